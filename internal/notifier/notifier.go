package notifier

import (
	"context"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// Notifier defines the interface for announcing wins
type Notifier interface {
	// Notify announces the given wins
	Notify(ctx context.Context, wins []advent.WinEntry) error
}

// Nop discards every notification
type Nop struct{}

// Notify does nothing
func (Nop) Notify(context.Context, []advent.WinEntry) error { return nil }
