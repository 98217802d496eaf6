// internal/fanout/resolver.go
package fanout

import (
	"context"

	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/models"
	"padel-notifier/internal/store"
)

// Resolver computes the candidate recipient set for a trigger, before any
// filter evaluation. Every store failure degrades to an empty partial result
// with a warning: a fan-out must never fail the user action that caused it.
type Resolver struct {
	store  store.Store
	logger logger.Logger
}

func NewResolver(s store.Store, log logger.Logger) *Resolver {
	return &Resolver{store: s, logger: log}
}

// Resolve returns the deduplicated candidate user ids for the event.
func (r *Resolver) Resolve(ctx context.Context, event *models.MatchEvent) []string {
	if event.Kind.IsActivity() {
		return r.resolveActivity(ctx, event)
	}
	return r.resolveNewMatch(ctx, event)
}

// resolveNewMatch implements the new-match strategy: the restricted allow-list
// minus the creator when the match is private, otherwise every known profile
// minus the creator. The creator's blocked users are removed in both modes.
func (r *Resolver) resolveNewMatch(ctx context.Context, event *models.MatchEvent) []string {
	var candidates []string

	if event.Restricted() {
		candidates = excludeID(dedupe(event.RestrictedUserIDs), event.CreatorID)
		// A list containing only the creator means there is nobody to tell.
		if len(candidates) == 0 {
			return nil
		}
	} else {
		profiles, err := r.store.ListProfiles(ctx)
		if err != nil {
			r.logger.Warn("profile query failed, skipping fan-out", map[string]interface{}{
				"matchId": event.MatchID,
				"error":   err.Error(),
			})
			return nil
		}
		for _, p := range profiles {
			if p.ID != event.CreatorID {
				candidates = append(candidates, p.ID)
			}
		}
	}

	return excludeIDs(candidates, r.blockedBy(ctx, event.CreatorID))
}

// resolveActivity implements the match-activity strategy: everyone engaged
// with the match (participants plus thought authors), minus the acting user
// and the organizer's blocked users.
func (r *Resolver) resolveActivity(ctx context.Context, event *models.MatchEvent) []string {
	participants, err := r.store.ListParticipants(ctx, event.MatchID)
	if err != nil {
		r.logger.Warn("participant query failed, continuing with partial set", map[string]interface{}{
			"matchId": event.MatchID,
			"error":   err.Error(),
		})
		participants = nil
	}

	authors, err := r.store.ListThoughtAuthors(ctx, event.MatchID)
	if err != nil {
		r.logger.Warn("thought author query failed, continuing with partial set", map[string]interface{}{
			"matchId": event.MatchID,
			"error":   err.Error(),
		})
		authors = nil
	}

	engaged := dedupe(append(participants, authors...))
	candidates := excludeID(engaged, event.ActorID)
	return excludeIDs(candidates, r.blockedBy(ctx, event.CreatorID))
}

// blockedBy fetches the organizer's blocked-user list, degrading to an empty
// list when the profile is missing or the store is unreachable.
func (r *Resolver) blockedBy(ctx context.Context, userID string) []string {
	if userID == "" {
		return nil
	}
	profile, err := r.store.GetProfile(ctx, userID)
	if err != nil {
		r.logger.Warn("blocked-user lookup failed, applying no block list", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil
	}
	if profile == nil {
		return nil
	}
	return profile.BlockedUsers
}

// dedupe keeps the first occurrence of each id, preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func excludeID(ids []string, exclude string) []string {
	var out []string
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

func excludeIDs(ids []string, exclude []string) []string {
	if len(exclude) == 0 {
		return ids
	}
	drop := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		drop[id] = struct{}{}
	}
	var out []string
	for _, id := range ids {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
