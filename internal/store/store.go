// internal/store/store.go
package store

import (
	"context"

	"padel-notifier/internal/models"
)

// Store is the generic record store the fan-out engine depends on. The store
// is authoritative; the engine keeps no state of its own between runs. All
// calls take a context so the caller controls the enclosing timeout.
type Store interface {
	// ListProfiles returns every user profile (id plus blocked-user list).
	ListProfiles(ctx context.Context) ([]models.Profile, error)

	// GetProfile returns a single profile, or nil without error when the
	// profile does not exist.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	// ListFilters returns all stored recipient filters in one batch.
	ListFilters(ctx context.Context) ([]models.RecipientFilter, error)

	// ListParticipants returns the profile ids of the current participants of
	// a match. Participant rows without a linked profile are omitted.
	ListParticipants(ctx context.Context, matchID string) ([]string, error)

	// ListThoughtAuthors returns the distinct ids of users who authored at
	// least one thought on a match.
	ListThoughtAuthors(ctx context.Context, matchID string) ([]string, error)

	// InsertNotifications persists a batch of notification records in a
	// single call.
	InsertNotifications(ctx context.Context, notifications []models.Notification) error
}
