// internal/fanout/evaluator_test.go
package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"padel-notifier/internal/models"
)

func locatedEvent(lat, lon float64, groups ...string) *models.MatchEvent {
	return &models.MatchEvent{
		Kind:      models.TriggerNewMatch,
		MatchID:   "match-1",
		Latitude:  floatPtr(lat),
		Longitude: floatPtr(lon),
		GroupIDs:  groups,
	}
}

func TestAccepts_EmptyFilterAcceptsEverything(t *testing.T) {
	filter := &models.RecipientFilter{UserID: "user-1"}

	events := []*models.MatchEvent{
		{Kind: models.TriggerNewMatch, MatchID: "m1"},
		locatedEvent(50.85, 4.35),
		locatedEvent(50.85, 4.35, "group-a", "group-b"),
	}

	for _, event := range events {
		assert.True(t, Accepts(event, filter, EvaluateOptions{}))
	}
}

func TestAccepts_LocationFilter(t *testing.T) {
	tests := []struct {
		name   string
		event  *models.MatchEvent
		filter *models.RecipientFilter
		want   bool
	}{
		{
			// The Brussels fixture: filter centered ~6 km from the match.
			name:  "within radius",
			event: locatedEvent(50.85, 4.35),
			filter: &models.RecipientFilter{
				LocationLatitude:  floatPtr(50.90),
				LocationLongitude: floatPtr(4.40),
				LocationRadiusKm:  floatPtr(10),
			},
			want: true,
		},
		{
			name:  "outside radius",
			event: locatedEvent(50.85, 4.35),
			filter: &models.RecipientFilter{
				LocationLatitude:  floatPtr(50.90),
				LocationLongitude: floatPtr(4.40),
				LocationRadiusKm:  floatPtr(3),
			},
			want: false,
		},
		{
			name:  "unlocated match rejected by location filter",
			event: &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1"},
			filter: &models.RecipientFilter{
				LocationLatitude:  floatPtr(50.90),
				LocationLongitude: floatPtr(4.40),
				LocationRadiusKm:  floatPtr(100),
			},
			want: false,
		},
		{
			name:  "coordinates without radius treated permissively",
			event: &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1"},
			filter: &models.RecipientFilter{
				LocationLatitude:  floatPtr(50.90),
				LocationLongitude: floatPtr(4.40),
			},
			want: true,
		},
		{
			name:  "single coordinate disables the location check",
			event: &models.MatchEvent{Kind: models.TriggerNewMatch, MatchID: "m1"},
			filter: &models.RecipientFilter{
				LocationLatitude: floatPtr(50.90),
				LocationRadiusKm: floatPtr(5),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepts(tt.event, tt.filter, EvaluateOptions{}))
		})
	}
}

func TestAccepts_GroupFilter(t *testing.T) {
	tests := []struct {
		name   string
		event  *models.MatchEvent
		filter *models.RecipientFilter
		opts   EvaluateOptions
		want   bool
	}{
		{
			name:   "overlapping group accepted",
			event:  &models.MatchEvent{Kind: models.TriggerNewMatch, GroupIDs: []string{"group-a", "group-b"}},
			filter: &models.RecipientFilter{GroupIDs: []string{"group-b", "group-c"}},
			want:   true,
		},
		{
			name:   "no overlap rejected",
			event:  &models.MatchEvent{Kind: models.TriggerNewMatch, GroupIDs: []string{"group-a"}},
			filter: &models.RecipientFilter{GroupIDs: []string{"group-x"}},
			want:   false,
		},
		{
			name:   "ungrouped match rejected by group-restricted filter",
			event:  &models.MatchEvent{Kind: models.TriggerNewMatch},
			filter: &models.RecipientFilter{GroupIDs: []string{"group-a"}},
			want:   false,
		},
		{
			name:   "empty filter groups never reject",
			event:  &models.MatchEvent{Kind: models.TriggerNewMatch},
			filter: &models.RecipientFilter{},
			want:   true,
		},
		{
			name:   "skip option bypasses group check",
			event:  &models.MatchEvent{Kind: models.TriggerNewMatch},
			filter: &models.RecipientFilter{GroupIDs: []string{"group-a"}},
			opts:   EvaluateOptions{SkipGroupFilter: true},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepts(tt.event, tt.filter, tt.opts))
		})
	}
}

func TestAccepts_ChecksAreANDComposed(t *testing.T) {
	// Location passes, group fails: the match must be rejected.
	event := locatedEvent(50.85, 4.35, "group-a")
	filter := &models.RecipientFilter{
		LocationLatitude:  floatPtr(50.90),
		LocationLongitude: floatPtr(4.40),
		LocationRadiusKm:  floatPtr(50),
		GroupIDs:          []string{"group-z"},
	}
	assert.False(t, Accepts(event, filter, EvaluateOptions{}))

	// Both pass.
	filter.GroupIDs = []string{"group-a"}
	assert.True(t, Accepts(event, filter, EvaluateOptions{}))
}
