// internal/delivery/delivery.go
package delivery

import (
	"context"

	"padel-notifier/internal/models"
)

// Publisher pushes a stored notification out on a side channel (mobile push,
// email). Delivery is best-effort: the fan-out engine logs publish errors and
// moves on, it never fails a run because a channel is down.
type Publisher interface {
	Publish(ctx context.Context, notification models.Notification) error
}
