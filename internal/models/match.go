// internal/models/match.go
package models

import "time"

// TriggerKind identifies the domain event that starts a notification fan-out.
type TriggerKind string

const (
	TriggerNewMatch          TriggerKind = "new_match"
	TriggerParticipantJoined TriggerKind = "participant_joined"
	TriggerParticipantLeft   TriggerKind = "participant_left"
	TriggerThoughtAdded      TriggerKind = "thought_added"
	TriggerThoughtReaction   TriggerKind = "thought_reaction"
)

// Valid reports whether k is one of the five known trigger kinds.
func (k TriggerKind) Valid() bool {
	switch k {
	case TriggerNewMatch, TriggerParticipantJoined, TriggerParticipantLeft,
		TriggerThoughtAdded, TriggerThoughtReaction:
		return true
	}
	return false
}

// IsActivity reports whether k is a match-activity trigger (everything except
// match creation). Activity triggers resolve recipients from engagement and
// bypass per-user filters.
func (k TriggerKind) IsActivity() bool {
	return k.Valid() && k != TriggerNewMatch
}

// MatchEvent is the triggering fact handed to the fan-out engine. It is
// immutable once passed in; each trigger kind populates only the fields it
// needs.
type MatchEvent struct {
	TriggerID         string      `json:"triggerId,omitempty"` // idempotency key, optional
	Kind              TriggerKind `json:"kind"`
	MatchID           string      `json:"matchId"`
	CreatorID         string      `json:"creatorId"` // match organizer
	ActorID           string      `json:"actorId"`   // user who performed the triggering action
	ActorName         string      `json:"actorName,omitempty"`
	VenueName         string      `json:"venueName,omitempty"`
	MatchDate         *time.Time  `json:"matchDate,omitempty"`
	Latitude          *float64    `json:"latitude,omitempty"`
	Longitude         *float64    `json:"longitude,omitempty"`
	GroupIDs          []string    `json:"groupIds,omitempty"`
	RestrictedUserIDs []string    `json:"restrictedUserIds,omitempty"`
	ThoughtContent    string      `json:"thoughtContent,omitempty"`
}

// HasCoordinates reports whether the match carries a usable location.
func (e *MatchEvent) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Restricted reports whether the match is private to an explicit allow-list.
func (e *MatchEvent) Restricted() bool {
	return len(e.RestrictedUserIDs) > 0
}
