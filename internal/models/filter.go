// internal/models/filter.go
package models

// RecipientFilter is one user's saved notification preferences, unique per
// user id. A user without a filter row is unconditionally eligible; absence
// of a filter is not a filter that rejects everything.
type RecipientFilter struct {
	UserID            string   `json:"userId"`
	LocationLatitude  *float64 `json:"locationLatitude,omitempty"`
	LocationLongitude *float64 `json:"locationLongitude,omitempty"`
	LocationRadiusKm  *float64 `json:"locationRadiusKm,omitempty"`
	GroupIDs          []string `json:"groupIds,omitempty"` // empty = accept all groups
}

// HasLocation reports whether the location filter is active. Both coordinates
// must be present; a row with only one of them is treated as having no
// location preference.
func (f *RecipientFilter) HasLocation() bool {
	return f.LocationLatitude != nil && f.LocationLongitude != nil
}
