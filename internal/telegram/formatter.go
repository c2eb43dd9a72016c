package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// maxMessageLength is the Bot API limit for one text message
const maxMessageLength = 4096

// FormatWin formats a single win as a Telegram message
func FormatWin(w advent.WinEntry) string {
	var msg strings.Builder

	msg.WriteString("🎁 <b>Gewinn im Adventskalender!</b>\n\n")
	msg.WriteString(fmt.Sprintf("%s <b>%s</b> (Los %s)\n",
		w.Member.Avatar, html.EscapeString(w.Member.Name), html.EscapeString(w.Member.Number)))
	msg.WriteString(fmt.Sprintf("📅 %d. Dezember", w.Day))
	if d, ok := advent.SpecialDay(w.Day); ok {
		msg.WriteString(fmt.Sprintf(" %s %s", d.Emoji, d.Label))
	}
	msg.WriteString("\n")
	msg.WriteString(fmt.Sprintf("🏆 %s\n", html.EscapeString(w.Prize)))
	msg.WriteString(fmt.Sprintf("🏢 %s\n", html.EscapeString(w.Sponsor)))

	return msg.String()
}

// FormatWins joins several wins into messages that each fit the Bot API limit
func FormatWins(wins []advent.WinEntry) []string {
	var (
		messages []string
		current  strings.Builder
	)
	for _, w := range wins {
		block := FormatWin(w)
		if current.Len() > 0 && current.Len()+len(block)+1 > maxMessageLength {
			messages = append(messages, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(block)
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}
