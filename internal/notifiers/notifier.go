package notifiers

import (
	"context"

	"github.com/shimantoislam/bot/internal/domain/model"
)

// Notifier defines the interface for the outbound delivery channel.
// This allows us to swap the real Telegram client for a log-only
// implementation in development and for fakes in tests.
type Notifier interface {
	// Send performs exactly one delivery attempt for the notification.
	// There is no retry and no deduplication; two calls with the same
	// notification produce two deliveries.
	Send(ctx context.Context, n *model.Notification) error
}
