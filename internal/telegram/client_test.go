package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales_bot/internal/bot"
)

func TestToEvent(t *testing.T) {
	ev, ok := toEvent(tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 872585742},
			Text: "49.99",
		},
	})
	require.True(t, ok)
	assert.Equal(t, bot.Event{UserID: 872585742, Kind: bot.EventText, Payload: "49.99"}, ev)

	ev, ok = toEvent(tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			From: &tgbotapi.User{ID: 100},
			Data: bot.LabelProduct,
		},
	})
	require.True(t, ok)
	assert.Equal(t, bot.Event{UserID: 100, Kind: bot.EventButton, Payload: bot.LabelProduct}, ev)

	// Updates without text (stickers, edits) are dropped.
	_, ok = toEvent(tgbotapi.Update{Message: &tgbotapi.Message{From: &tgbotapi.User{ID: 1}}})
	assert.False(t, ok)
	_, ok = toEvent(tgbotapi.Update{})
	assert.False(t, ok)
}

func TestMenuKeyboardCoversEveryLabel(t *testing.T) {
	keyboard := menuKeyboard()

	var labels []string
	for _, row := range keyboard.Keyboard {
		for _, button := range row {
			labels = append(labels, button.Text)
		}
	}

	for _, row := range bot.MenuRows() {
		for _, label := range row {
			assert.Contains(t, labels, label)
			assert.NotEqual(t, bot.CmdUnknown, bot.ParseCommand(label),
				"keyboard label %q must map to a known command", label)
		}
	}
	assert.True(t, keyboard.ResizeKeyboard)
}
