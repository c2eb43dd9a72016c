package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/telegram"
)

// DryRunNotifier prints the messages that would be sent without sending them
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints one block per message
func (n *DryRunNotifier) Notify(_ context.Context, wins []advent.WinEntry) error {
	messages := telegram.FormatWins(wins)
	for i, msg := range messages {
		fmt.Fprintf(n.out, "--- Message %d/%d ---\n", i+1, len(messages))
		fmt.Fprintln(n.out, msg)
	}
	return nil
}
