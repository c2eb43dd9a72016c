package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/telegram"
)

// MessageSender sends one formatted message
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier posts wins to a Telegram chat
type TelegramNotifier struct {
	client MessageSender
}

// NewTelegramNotifier creates a notifier for the given bot and chat
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	return &TelegramNotifier{client: client}, nil
}

// Notify sends the wins, stopping at the first failed message
func (n *TelegramNotifier) Notify(ctx context.Context, wins []advent.WinEntry) error {
	for i, msg := range telegram.FormatWins(wins) {
		if err := n.client.SendMessage(ctx, msg); err != nil {
			return fmt.Errorf("sending message %d: %w", i+1, err)
		}
	}
	return nil
}
