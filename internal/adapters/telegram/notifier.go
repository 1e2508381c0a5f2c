package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"eventlistings/internal/domain"
)

// Notifier posts booking activity to the configured organizer chat. With an
// empty token it stays disabled and every notify call is a no-op.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

func NewNotifier(token string, chatID int64, logger *slog.Logger) (*Notifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &Notifier{bot: nil, chatID: chatID, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Notifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// NotifyBookingCreated implements domain.BookingNotifier.
func (n *Notifier) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, event *domain.Event) error {
	text := fmt.Sprintf(
		"*New booking*\n\nEvent: %s\nWhen: %s %s\nBooked by: %s",
		event.Title, event.Date, event.Time, booking.Email,
	)
	return n.send(ctx, text)
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)")
		return nil
	}
	if n.chatID == 0 {
		n.logger.Debug("notification skipped (no chat id)")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}
	return nil
}
