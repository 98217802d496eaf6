// internal/fanout/resolver_test.go
package fanout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/models"
)

func newTestResolver(t *testing.T, s *mockStore) *Resolver {
	return NewResolver(s, logger.NewTestLogger(t))
}

func profilesStore(ids ...string) *mockStore {
	profiles := make([]models.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, models.Profile{ID: id})
	}
	return &mockStore{
		ListProfilesFunc: func(ctx context.Context) ([]models.Profile, error) {
			return profiles, nil
		},
	}
}

func TestResolve_PublicMatchTargetsEveryoneButCreator(t *testing.T) {
	s := profilesStore("user-creator", "user-a", "user-b", "user-c")
	r := newTestResolver(t, s)

	event := &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1", CreatorID: "user-creator"}
	got := r.Resolve(context.Background(), event)

	assert.Equal(t, []string{"user-a", "user-b", "user-c"}, got)
}

func TestResolve_PublicMatchRemovesBlockedUsers(t *testing.T) {
	s := profilesStore("user-creator", "user-a", "user-b")
	s.GetProfileFunc = func(ctx context.Context, userID string) (*models.Profile, error) {
		return &models.Profile{ID: userID, BlockedUsers: []string{"user-b"}}, nil
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1", CreatorID: "user-creator"}
	got := r.Resolve(context.Background(), event)

	assert.Equal(t, []string{"user-a"}, got)
}

func TestResolve_RestrictedMatch(t *testing.T) {
	tests := []struct {
		name       string
		restricted []string
		blocked    []string
		want       []string
	}{
		{
			name:       "creator only yields no candidates",
			restricted: []string{"user-creator"},
			want:       nil,
		},
		{
			name:       "allow-list minus creator",
			restricted: []string{"user-creator", "user-a", "user-b"},
			want:       []string{"user-a", "user-b"},
		},
		{
			name:       "blocked users removed even from the allow-list",
			restricted: []string{"user-creator", "user-a", "user-b"},
			blocked:    []string{"user-b"},
			want:       []string{"user-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockStore{
				GetProfileFunc: func(ctx context.Context, userID string) (*models.Profile, error) {
					return &models.Profile{ID: userID, BlockedUsers: tt.blocked}, nil
				},
			}
			r := newTestResolver(t, s)

			event := &models.MatchEvent{
				Kind:              models.TriggerNewMatch,
				MatchID:           "m1",
				CreatorID:         "user-creator",
				RestrictedUserIDs: tt.restricted,
			}
			assert.Equal(t, tt.want, r.Resolve(context.Background(), event))
		})
	}
}

func TestResolve_ProfileQueryFailureDegradesToEmpty(t *testing.T) {
	s := &mockStore{
		ListProfilesFunc: func(ctx context.Context) ([]models.Profile, error) {
			return nil, errors.New("store unreachable")
		},
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1", CreatorID: "user-creator"}
	assert.Empty(t, r.Resolve(context.Background(), event))
}

func TestResolve_ActivityUnionsParticipantsAndThoughtAuthors(t *testing.T) {
	s := &mockStore{
		ListParticipantsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-a", "user-b"}, nil
		},
		ListThoughtAuthorsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-b", "user-c"}, nil
		},
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{
		Kind:      models.TriggerParticipantJoined,
		MatchID:   "m1",
		CreatorID: "user-creator",
		ActorID:   "user-a",
	}
	got := r.Resolve(context.Background(), event)

	assert.Equal(t, []string{"user-b", "user-c"}, got)
}

func TestResolve_ActivityExcludesActorAndBlocked(t *testing.T) {
	s := &mockStore{
		ListParticipantsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-joiner", "user-x", "user-y"}, nil
		},
		ListThoughtAuthorsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-joiner"}, nil
		},
		GetProfileFunc: func(ctx context.Context, userID string) (*models.Profile, error) {
			return &models.Profile{ID: userID, BlockedUsers: []string{"user-y"}}, nil
		},
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{
		Kind:      models.TriggerParticipantJoined,
		MatchID:   "m1",
		CreatorID: "user-creator",
		ActorID:   "user-joiner",
	}
	assert.Equal(t, []string{"user-x"}, r.Resolve(context.Background(), event))
}

func TestResolve_JoinerWhoIsOnlyThoughtAuthorGetsNothing(t *testing.T) {
	s := &mockStore{
		ListParticipantsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-joiner"}, nil
		},
		ListThoughtAuthorsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-joiner"}, nil
		},
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{
		Kind:      models.TriggerParticipantJoined,
		MatchID:   "m1",
		CreatorID: "user-creator",
		ActorID:   "user-joiner",
	}
	assert.Empty(t, r.Resolve(context.Background(), event))
}

func TestResolve_ActivitySubQueryFailuresArePartial(t *testing.T) {
	s := &mockStore{
		ListParticipantsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return nil, errors.New("store unreachable")
		},
		ListThoughtAuthorsFunc: func(ctx context.Context, matchID string) ([]string, error) {
			return []string{"user-a"}, nil
		},
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{
		Kind:      models.TriggerThoughtAdded,
		MatchID:   "m1",
		CreatorID: "user-creator",
		ActorID:   "user-b",
	}
	assert.Equal(t, []string{"user-a"}, r.Resolve(context.Background(), event))
}

func TestResolve_BlockedLookupFailureAppliesNoBlockList(t *testing.T) {
	s := profilesStore("user-creator", "user-a")
	s.GetProfileFunc = func(ctx context.Context, userID string) (*models.Profile, error) {
		return nil, errors.New("store unreachable")
	}
	r := newTestResolver(t, s)

	event := &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1", CreatorID: "user-creator"}
	assert.Equal(t, []string{"user-a"}, r.Resolve(context.Background(), event))
}
