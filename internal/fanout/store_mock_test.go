// internal/fanout/store_mock_test.go
package fanout

import (
	"context"

	"padel-notifier/internal/models"
)

// mockStore implements store.Store with overridable functions. Calls without
// an override return empty results.
type mockStore struct {
	ListProfilesFunc        func(ctx context.Context) ([]models.Profile, error)
	GetProfileFunc          func(ctx context.Context, userID string) (*models.Profile, error)
	ListFiltersFunc         func(ctx context.Context) ([]models.RecipientFilter, error)
	ListParticipantsFunc    func(ctx context.Context, matchID string) ([]string, error)
	ListThoughtAuthorsFunc  func(ctx context.Context, matchID string) ([]string, error)
	InsertNotificationsFunc func(ctx context.Context, notifications []models.Notification) error
}

func (m *mockStore) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	if m.ListProfilesFunc != nil {
		return m.ListProfilesFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) ListFilters(ctx context.Context) ([]models.RecipientFilter, error) {
	if m.ListFiltersFunc != nil {
		return m.ListFiltersFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) ListParticipants(ctx context.Context, matchID string) ([]string, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx, matchID)
	}
	return nil, nil
}

func (m *mockStore) ListThoughtAuthors(ctx context.Context, matchID string) ([]string, error) {
	if m.ListThoughtAuthorsFunc != nil {
		return m.ListThoughtAuthorsFunc(ctx, matchID)
	}
	return nil, nil
}

func (m *mockStore) InsertNotifications(ctx context.Context, notifications []models.Notification) error {
	if m.InsertNotificationsFunc != nil {
		return m.InsertNotificationsFunc(ctx, notifications)
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
