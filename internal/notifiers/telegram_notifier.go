package notifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
	"github.com/shimantoislam/bot/internal/domain/model"
)

// maxErrorBodySize limits how much of a Telegram error response is read for
// diagnostics.
const maxErrorBodySize = 2048

// sendMessageRequest is the JSON body of the Telegram sendMessage call.
// Telegram accepts chat_id as an integer or a string; the relay always
// forwards the caller-supplied value as a string.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiError is the subset of a Telegram error response worth logging.
type apiError struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// TelegramNotifier sends notifications through the Telegram Bot API.
//
// Unlike a long-lived bot, the relay receives the bot token with every
// request, so there is no per-token client; each Send issues a single raw
// sendMessage POST against the configured API base URL.
type TelegramNotifier struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewTelegramNotifier creates a new instance of TelegramNotifier.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		baseURL: cfg.APIBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With().Str("component", "telegram_notifier").Logger(),
	}
}

// Send implements the Notifier interface for Telegram. It performs exactly one
// outbound call; the detailed failure reason is logged here and never surfaced
// to the original caller.
func (n *TelegramNotifier) Send(ctx context.Context, notification *model.Notification) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    notification.ChatID,
		Text:      notification.Text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal sendMessage body: %w", err)
	}

	// The bot token is part of the URL; keep it out of the logs.
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, notification.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("chat_id", notification.ChatID).Msg("telegram request failed")
		return fmt.Errorf("telegram: sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		n.logger.Error().
			Int("status", resp.StatusCode).
			Str("chat_id", notification.ChatID).
			Str("description", apiErr.Description).
			Msg("telegram rejected sendMessage")
		return fmt.Errorf("telegram: sendMessage returned status %d", resp.StatusCode)
	}

	n.logger.Info().Str("chat_id", notification.ChatID).Msg("telegram message sent successfully")
	return nil
}
