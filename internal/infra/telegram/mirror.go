// Package telegram provides an optional send-only mirror channel: every
// message posted to the primary webhook is copied to a Telegram chat when
// the bot token and chat ID are configured.
package telegram

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"study_automation_bot/internal/domain/notify"
)

// MirrorNotifier implements notify.Notifier over a Telegram bot. It never
// polls for updates; it only sends.
type MirrorNotifier struct {
	bot    *telebot.Bot
	chatID int64
	log    *logrus.Logger
}

func NewMirrorNotifier(token string, chatID int64, log *logrus.Logger) (*MirrorNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &MirrorNotifier{bot: bot, chatID: chatID, log: log}, nil
}

func (m *MirrorNotifier) Send(ctx context.Context, msg notify.Message) error {
	if msg.Content == "" {
		return nil
	}
	if _, err := m.bot.Send(telebot.ChatID(m.chatID), msg.Content); err != nil {
		return fmt.Errorf("send telegram mirror message: %w", err)
	}
	m.log.Debugf("mirrored message to telegram chat %d", m.chatID)
	return nil
}
