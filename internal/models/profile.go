// internal/models/profile.go
package models

// Profile is the slice of a user profile the fan-out engine needs: the id,
// the list of users this profile has blocked, and the contact address used by
// the optional email delivery channel.
type Profile struct {
	ID           string   `json:"id"`
	Email        string   `json:"email,omitempty"`
	BlockedUsers []string `json:"blockedUsers,omitempty"`
}
