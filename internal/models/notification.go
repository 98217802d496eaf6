// internal/models/notification.go
package models

import "time"

// Notification is one per-recipient record produced by a fan-out run. It is
// created unread and never mutated by this subsystem afterwards; read-state
// toggling belongs to the consuming application.
type Notification struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Kind      TriggerKind `json:"kind"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Link      string      `json:"link"` // deep link back to the match
	MatchID   string      `json:"matchId"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"createdAt"`
}
