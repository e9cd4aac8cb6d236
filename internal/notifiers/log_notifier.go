package notifiers

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/domain/model"
)

// LogNotifier is a mock notifier that implements the Notifier interface.
// It simply logs the notification details instead of sending them to
// Telegram. This is extremely useful for development and testing.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new instance of LogNotifier.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "log_notifier").Logger(),
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(ctx context.Context, notification *model.Notification) error {
	n.logger.Info().
		Str("chat_id", notification.ChatID).
		Int("text_length", len(notification.Text)).
		Msg(">>> MOCK SEND: notification dispatched")

	return nil
}
