// Package telegram adapts the Telegram Bot API to the core's event and
// sender contracts. It owns nothing but the connection: authorization,
// state and ledger logic live behind the dispatcher.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"sales_bot/internal/bot"
)

// Client wraps a Telegram bot connection. It implements bot.Sender and
// digest.Sender.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

// NewClient authenticates against the Bot API with the given token.
func NewClient(token string, logger *zap.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	logger.Info("telegram connected", zap.String("bot", api.Self.UserName))
	return &Client{api: api, logger: logger}, nil
}

// SendText sends a plain text message with the menu keyboard attached.
func (c *Client) SendText(targetID int64, text string) error {
	msg := tgbotapi.NewMessage(targetID, text)
	msg.ReplyMarkup = menuKeyboard()
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendDocument sends an in-memory file.
func (c *Client) SendDocument(targetID int64, data []byte, filename string) error {
	doc := tgbotapi.NewDocument(targetID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if _, err := c.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// SendImage sends an in-memory image as a photo.
func (c *Client) SendImage(targetID int64, data []byte, filename string) error {
	photo := tgbotapi.NewPhoto(targetID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if _, err := c.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send image: %w", err)
	}
	return nil
}

// Run long-polls for updates and feeds them to the dispatcher until
// ctx is cancelled. Each update is handled on its own goroutine; the
// dispatcher serializes per user.
func (c *Client) Run(ctx context.Context, dispatcher *bot.Dispatcher) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return
		case update := <-updates:
			ev, ok := toEvent(update)
			if !ok {
				continue
			}
			go dispatcher.Handle(ctx, ev)
		}
	}
}

// toEvent maps a Telegram update to a core event. Updates without a
// usable payload (edits, stickers, joins) are dropped.
func toEvent(update tgbotapi.Update) (bot.Event, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil && update.Message.Text != "":
		return bot.Event{
			UserID:  update.Message.From.ID,
			Kind:    bot.EventText,
			Payload: update.Message.Text,
		}, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return bot.Event{
			UserID:  update.CallbackQuery.From.ID,
			Kind:    bot.EventButton,
			Payload: update.CallbackQuery.Data,
		}, true
	}
	return bot.Event{}, false
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(bot.MenuRows()))
	for _, labels := range bot.MenuRows() {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}
