// internal/fanout/evaluator.go
package fanout

import (
	"padel-notifier/internal/geo"
	"padel-notifier/internal/models"
)

// EvaluateOptions tunes a single filter evaluation.
type EvaluateOptions struct {
	// SkipGroupFilter disables the group check. Used for restricted matches:
	// the organizer hand-picked the recipients, so group targeting is
	// irrelevant there.
	SkipGroupFilter bool
}

// Accepts reports whether a recipient's saved filter accepts a match event.
// The location check and the group check are AND-composed: each one, when
// active, must pass on its own. A filter with neither check active accepts
// every match.
func Accepts(event *models.MatchEvent, filter *models.RecipientFilter, opts EvaluateOptions) bool {
	if !locationAccepts(event, filter) {
		return false
	}
	if !opts.SkipGroupFilter && !groupAccepts(event, filter) {
		return false
	}
	return true
}

func locationAccepts(event *models.MatchEvent, filter *models.RecipientFilter) bool {
	if !filter.HasLocation() {
		return true
	}
	// Malformed row: coordinates without a usable radius. Treated permissively
	// rather than rejecting everything.
	if filter.LocationRadiusKm == nil || *filter.LocationRadiusKm <= 0 {
		return true
	}
	// An un-located match cannot be proven nearby.
	if !event.HasCoordinates() {
		return false
	}

	distance := geo.DistanceKm(
		*filter.LocationLatitude, *filter.LocationLongitude,
		*event.Latitude, *event.Longitude,
	)
	return distance <= *filter.LocationRadiusKm
}

func groupAccepts(event *models.MatchEvent, filter *models.RecipientFilter) bool {
	if len(filter.GroupIDs) == 0 {
		return true
	}
	if len(event.GroupIDs) == 0 {
		return false
	}

	wanted := make(map[string]struct{}, len(filter.GroupIDs))
	for _, id := range filter.GroupIDs {
		wanted[id] = struct{}{}
	}
	for _, id := range event.GroupIDs {
		if _, ok := wanted[id]; ok {
			return true
		}
	}
	return false
}
