package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
	"github.com/shimantoislam/bot/internal/domain/model"
	"github.com/shimantoislam/bot/internal/notifiers"
)

// Sentinel errors for the relay pipeline. The HTTP layer dispatches on these
// with errors.Is and maps them to response codes.
var (
	// ErrInvalidAPIKey means the caller supplied a key that does not match
	// the configured secret.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrValidation means neither accepted input shape could be satisfied,
	// or the data parameter could not be decoded.
	ErrValidation = errors.New("validation failed")

	// ErrDelivery means the single outbound delivery attempt failed.
	ErrDelivery = errors.New("delivery failed")
)

// Source tags where the raw input came from. The authorization rule differs
// between the two: query-string callers may omit api_key entirely.
type Source string

const (
	SourceBody  Source = "body"  // structured JSON body (POST /send)
	SourceQuery Source = "query" // query parameters (GET /send)
)

// Input is the union of the two caller conventions before normalization.
// Presence flags distinguish an absent field from an empty one where the
// difference matters.
type Input struct {
	Source Source

	APIKey        string
	APIKeyPresent bool

	// Direct-field shape.
	BotToken string
	UserID   string
	Email    string
	Password string
	Message  string

	// TOKEN/CHAT/data shape. Data carries the still-percent-encoded text;
	// decoding happens during normalization.
	Token       string
	Chat        string
	Data        string
	DataPresent bool
}

// RelayService encapsulates the business logic of the relay: it authorizes
// the caller, normalizes the raw input into a Notification, and hands it to
// the notifier for a single delivery attempt. It holds no state between
// requests.
type RelayService struct {
	apiKey   string
	notifier notifiers.Notifier
	logger   zerolog.Logger
}

func NewRelayService(
	cfg *config.Config,
	notifier notifiers.Notifier,
	logger *zerolog.Logger,
) *RelayService {
	return &RelayService{
		apiKey:   cfg.Auth.APIKey,
		notifier: notifier,
		logger:   logger.With().Str("layer", "service").Logger(),
	}
}

// Relay runs the full pipeline for one request: authorize, normalize,
// deliver. It stops at the first failure; nothing is mutated before the
// delivery stage, so there is no rollback.
func (s *RelayService) Relay(ctx context.Context, in Input) error {
	if err := s.authorize(in); err != nil {
		s.logger.Warn().Str("source", string(in.Source)).Msg("rejected request with invalid api key")
		return err
	}

	notification, err := s.normalize(in)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", string(in.Source)).Msg("rejected malformed request")
		return err
	}

	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.Error().Err(err).Msg("failed to deliver notification")
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return nil
}

// authorize compares the supplied key against the configured secret.
//
// Query-string callers that omit api_key entirely skip the check. That
// asymmetry matches the historical behavior of the query interface and is
// deliberate; body callers are always checked.
func (s *RelayService) authorize(in Input) error {
	if in.Source == SourceQuery && !in.APIKeyPresent {
		return nil
	}
	if !in.APIKeyPresent || in.APIKey != s.apiKey {
		return ErrInvalidAPIKey
	}
	return nil
}

// normalize reconciles the two accepted input shapes into one Notification.
//
// The TOKEN/CHAT/data shape wins whenever all three of its keys are present,
// even if the direct-field keys are also filled in.
func (s *RelayService) normalize(in Input) (*model.Notification, error) {
	if in.Token != "" && in.Chat != "" && in.DataPresent {
		text, err := url.QueryUnescape(in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed percent-encoding in data parameter", ErrValidation)
		}
		if text == "" {
			return nil, fmt.Errorf("%w: data parameter is empty", ErrValidation)
		}
		return model.NewTextNotification(in.Token, in.Chat, text), nil
	}

	if in.BotToken != "" && in.UserID != "" {
		if in.Message != "" {
			return model.NewTextNotification(in.BotToken, in.UserID, in.Message), nil
		}
		if in.Email != "" && in.Password != "" {
			return model.NewLoginNotification(in.BotToken, in.UserID, in.Email, in.Password), nil
		}
	}

	return nil, fmt.Errorf(
		"%w: expected TOKEN, CHAT and data, or bot_token, user_id and email/password (or message)",
		ErrValidation,
	)
}
