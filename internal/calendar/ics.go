// Package calendar exports wins as an iCalendar (.ics) file with one all-day
// entry per win on its calendar day.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/match"
	"github.com/pfrederiksen/advent-wins/internal/scraper"
)

const (
	prodID  = "-//advent-wins//advent-wins//DE"
	uidHost = "advent-wins"
)

// Year returns the calendar year of the December preceding eventEnd
func Year(eventEnd time.Time) int {
	return eventEnd.AddDate(0, -1, 0).Year()
}

// GenerateICS generates an iCalendar file for wins of the calendar in year.
// now is used for DTSTAMP.
func GenerateICS(wins []advent.WinEntry, year int, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(fmt.Sprintf("Adventskalender %d Gewinne", year))))

	seen := make(map[string]bool, len(wins))
	for _, w := range wins {
		key := match.Key(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		writeEvent(&ics, w, year, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, w advent.WinEntry, year int, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", uid(w, year), uidHost))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// All-day entry on the win day
	start := time.Date(year, time.December, w.Day, 0, 0, 0, 0, time.UTC)
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(start.AddDate(0, 0, 1))))

	summary := fmt.Sprintf("🎁 %s gewinnt %s", w.Member.Name, w.Prize)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Los %s\nSponsor: %s\n\nGewinnliste: %s", w.Member.Number, w.Sponsor, scraper.WinnersURL)
	if deco, ok := advent.SpecialDay(w.Day); ok {
		description = fmt.Sprintf("%s %s\n%s", deco.Emoji, deco.Label, description)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(w.Sponsor)))
	ics.WriteString(fmt.Sprintf("URL:%s\r\n", scraper.WinnersURL))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	// Show as free
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// uid is stable across exports of the same win
func uid(w advent.WinEntry, year int) string {
	number := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return '-'
	}, w.Member.Number)
	return fmt.Sprintf("%d-%02d-%s-%s", year, w.Day, number, shortHash(w.Sponsor+"|"+w.Prize))
}

// shortHash returns the first 8 hex digits of the SHA1 of s
func shortHash(s string) string {
	h := sha1.New()
	h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum(nil))[:8]
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats a date value
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
