// Package notify pushes booking lifecycle updates to a telegram admin chat.
package notify

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"shareit/internal/config"
	"shareit/internal/events"
)

// Sender is the slice of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	sender Sender
	chatID int64
	logger zerolog.Logger
}

// New dials the bot API with the configured token.
func New(cfg config.TelegramConfig, logger *zerolog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug
	return NewWithSender(bot, cfg.AdminChatID, logger), nil
}

func NewWithSender(sender Sender, chatID int64, logger *zerolog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		chatID: chatID,
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Register subscribes the notifier to booking events on the bus.
func (n *Notifier) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handle)
	bus.Subscribe(events.EventBookingApproved, n.handle)
	bus.Subscribe(events.EventBookingRejected, n.handle)
}

func (n *Notifier) handle(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event", event.Type).Msg("failed to decode event payload")
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatMessage(event.Type, payload))
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("event", event.Type).Msg("failed to send notification")
		return err
	}

	n.logger.Debug().Str("event", event.Type).Int64("booking_id", payload.BookingID).Msg("notification sent")
	return nil
}

func formatMessage(eventType string, p events.BookingEventPayload) string {
	var action string
	switch eventType {
	case events.EventBookingCreated:
		action = "New booking"
	case events.EventBookingApproved:
		action = "Booking approved"
	case events.EventBookingRejected:
		action = "Booking rejected"
	default:
		action = "Booking update"
	}

	return fmt.Sprintf("%s #%d\nItem: %s\nBooker: %s\n%s - %s",
		action,
		p.BookingID,
		p.ItemName,
		p.BookerName,
		p.Start.Format("2006-01-02 15:04"),
		p.End.Format("2006-01-02 15:04"),
	)
}
