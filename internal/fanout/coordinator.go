// internal/fanout/coordinator.go
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/common/metrics"
	"padel-notifier/internal/delivery"
	"padel-notifier/internal/models"
	"padel-notifier/internal/store"
)

// Coordinator runs one fan-out per trigger: resolve candidates, prune them
// with stored filters, compose the payload, persist the batch, then hand it
// to the best-effort delivery channels. It is stateless between runs; any
// number of runs may proceed concurrently.
type Coordinator struct {
	store      store.Store
	resolver   *Resolver
	composer   *Composer
	dedup      *DedupGuard // nil disables the guard
	publishers []delivery.Publisher
	logger     logger.Logger
}

func NewCoordinator(
	s store.Store,
	resolver *Resolver,
	composer *Composer,
	dedup *DedupGuard,
	publishers []delivery.Publisher,
	log logger.Logger,
) *Coordinator {
	return &Coordinator{
		store:      s,
		resolver:   resolver,
		composer:   composer,
		dedup:      dedup,
		publishers: publishers,
		logger:     log,
	}
}

// RunFanOut processes one trigger to completion, best-effort. It returns the
// number of notification records created. The returned error reports the
// insert failure for observability; callers treat fan-out as a side effect
// and must not fail the triggering user action because of it.
func (c *Coordinator) RunFanOut(ctx context.Context, event *models.MatchEvent) (int, error) {
	if !event.Kind.Valid() {
		return 0, fmt.Errorf("unknown trigger kind: %q", event.Kind)
	}

	kind := string(event.Kind)
	start := time.Now()
	defer func() {
		metrics.FanOutDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()
	metrics.FanOutRuns.WithLabelValues(kind).Inc()

	if !c.claimTrigger(ctx, event) {
		metrics.FanOutDuplicates.WithLabelValues(kind).Inc()
		return 0, nil
	}

	candidates := c.resolver.Resolve(ctx, event)
	if len(candidates) == 0 {
		return 0, nil
	}

	recipients := c.applyFilters(ctx, event, candidates)
	if len(recipients) == 0 {
		return 0, nil
	}

	payload, err := c.composer.Compose(event)
	if err != nil {
		metrics.FanOutFailures.WithLabelValues(kind, "compose").Inc()
		return 0, err
	}

	now := time.Now().UTC()
	notifications := make([]models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, models.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Kind:      event.Kind,
			Title:     payload.Title,
			Message:   payload.Message,
			Link:      payload.Link,
			MatchID:   event.MatchID,
			Read:      false,
			CreatedAt: now,
		})
	}

	if err := c.store.InsertNotifications(ctx, notifications); err != nil {
		metrics.FanOutFailures.WithLabelValues(kind, "insert").Inc()
		c.logger.Error("notification insert failed", map[string]interface{}{
			"matchId": event.MatchID,
			"kind":    kind,
			"count":   len(notifications),
			"error":   err.Error(),
		})
		return 0, err
	}

	metrics.NotificationsCreated.WithLabelValues(kind).Add(float64(len(notifications)))
	c.publish(ctx, event, notifications)

	return len(notifications), nil
}

// applyFilters prunes new-match candidates with their stored filters. A
// candidate without a filter row is unconditionally accepted. Activity
// triggers skip evaluation entirely: engaged users opted in by participating.
func (c *Coordinator) applyFilters(ctx context.Context, event *models.MatchEvent, candidates []string) []string {
	if event.Kind.IsActivity() {
		return candidates
	}

	filters, err := c.store.ListFilters(ctx)
	if err != nil {
		metrics.FanOutFailures.WithLabelValues(string(event.Kind), "filters").Inc()
		c.logger.Warn("filter query failed, accepting all candidates", map[string]interface{}{
			"matchId": event.MatchID,
			"error":   err.Error(),
		})
		filters = nil
	}

	byUser := make(map[string]*models.RecipientFilter, len(filters))
	for i := range filters {
		byUser[filters[i].UserID] = &filters[i]
	}

	opts := EvaluateOptions{SkipGroupFilter: event.Restricted()}
	var accepted []string
	for _, userID := range candidates {
		filter, ok := byUser[userID]
		if !ok || Accepts(event, filter, opts) {
			accepted = append(accepted, userID)
		}
	}
	return accepted
}

// claimTrigger consults the dedup guard. Guard errors fail open: losing a
// duplicate-suppression window is preferable to dropping a notification.
func (c *Coordinator) claimTrigger(ctx context.Context, event *models.MatchEvent) bool {
	if c.dedup == nil || event.TriggerID == "" {
		return true
	}
	first, err := c.dedup.Acquire(ctx, event.TriggerID)
	if err != nil {
		metrics.FanOutFailures.WithLabelValues(string(event.Kind), "dedup").Inc()
		c.logger.Warn("dedup guard unavailable, proceeding without it", map[string]interface{}{
			"triggerId": event.TriggerID,
			"error":     err.Error(),
		})
		return true
	}
	if !first {
		c.logger.Info("duplicate trigger suppressed", map[string]interface{}{
			"triggerId": event.TriggerID,
			"matchId":   event.MatchID,
		})
	}
	return first
}

func (c *Coordinator) publish(ctx context.Context, event *models.MatchEvent, notifications []models.Notification) {
	for _, p := range c.publishers {
		for _, n := range notifications {
			if err := p.Publish(ctx, n); err != nil {
				metrics.FanOutFailures.WithLabelValues(string(event.Kind), "delivery").Inc()
				c.logger.Warn("delivery publish failed", map[string]interface{}{
					"notificationId": n.ID,
					"userId":         n.UserID,
					"error":          err.Error(),
				})
			}
		}
	}
}
