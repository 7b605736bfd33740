package notifier

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier sends alert messages to a single chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64, logger zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "notifier").Logger(),
	}, nil
}

// Send delivers a message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	_, err := t.bot.Send(msg)
	return err
}

// SendWithRetry delivers a message with exponential backoff on failure.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		if err := t.Send(text); err != nil {
			t.logger.Warn().Err(err).Msg("Telegram send failed, retrying")
			return err
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
