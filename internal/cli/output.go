package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/match"
	"github.com/pfrederiksen/advent-wins/internal/tracker"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const timeLayout = "2006-01-02 15:04"

// WinsResult contains the stored wins
type WinsResult struct {
	DataSource advent.DataSource `json:"dataSource"`
	LastCheck  *time.Time        `json:"lastCheck,omitempty"`
	Wins       []advent.WinEntry `json:"wins"`
}

// WriteCheck writes the result of a check in the specified format
func WriteCheck(w io.Writer, res *tracker.CheckResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatText:
		return writeCheckText(w, res, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteWins writes the stored wins in the specified format
func WriteWins(w io.Writer, res *WinsResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatText:
		return writeWinsText(w, res, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteGroups writes the registered groups in the specified format
func WriteGroups(w io.Writer, groups []advent.Group, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, groups)
	case FormatText:
		return writeGroupsText(w, groups, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDays writes day data in the specified format, marking registered numbers
func WriteDays(w io.Writer, days []advent.DayData, members []advent.Member, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, days)
	case FormatText:
		return writeDaysText(w, days, members)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeCheckText(w io.Writer, res *tracker.CheckResult, verbose bool) error {
	fmt.Fprintf(w, "Data source: %s\n", res.Source)
	if res.Error != "" {
		fmt.Fprintf(w, "Warning: %s\n", res.Error)
	}
	if res.CachedAsOf != nil {
		fmt.Fprintf(w, "Cached data as of %s\n", res.CachedAsOf.Local().Format(timeLayout))
	}
	if verbose {
		fmt.Fprintf(w, "Checked at: %s\n", res.CheckedAt.Local().Format(timeLayout))
		fmt.Fprintf(w, "Days with results: %d\n", res.Days)
	}

	if len(res.Wins) == 0 {
		fmt.Fprintln(w, "No wins found.")
		return nil
	}

	isNew := make(map[string]bool, len(res.NewWins))
	for _, e := range res.NewWins {
		isNew[match.Key(e)] = true
	}

	fmt.Fprintln(w)
	for _, e := range res.Wins {
		prefix := "    "
		if isNew[match.Key(e)] {
			prefix = "NEW "
		}
		fmt.Fprintf(w, "%s%s\n", prefix, formatWin(e))
	}
	fmt.Fprintf(w, "\nTotal: %d wins, %d new\n", len(res.Wins), len(res.NewWins))
	return nil
}

func writeWinsText(w io.Writer, res *WinsResult, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Data source: %s\n", res.DataSource)
		if res.LastCheck != nil {
			fmt.Fprintf(w, "Last check: %s\n", res.LastCheck.Local().Format(timeLayout))
		}
	}

	if len(res.Wins) == 0 {
		fmt.Fprintln(w, "No wins found.")
		return nil
	}

	for _, e := range res.Wins {
		fmt.Fprintln(w, formatWin(e))
		if verbose {
			fmt.Fprintf(w, "     Member ID: %s\n", e.Member.ID)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d wins\n", len(res.Wins))
	return nil
}

func writeGroupsText(w io.Writer, groups []advent.Group, verbose bool) error {
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d tickets)\n", g.Name, len(g.Members))
		if verbose {
			fmt.Fprintf(w, "  ID: %s\n", g.ID)
		}
		for _, m := range g.Members {
			fmt.Fprintf(w, "  %s %s: %s\n", m.Avatar, m.Name, m.Number)
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", m.ID)
			}
		}
	}
	return nil
}

func writeDaysText(w io.Writer, days []advent.DayData, members []advent.Member) error {
	if len(days) == 0 {
		fmt.Fprintln(w, "No days.")
		return nil
	}
	for _, d := range days {
		fmt.Fprintf(w, "\n%d. Dezember", d.Day)
		if deco, ok := advent.SpecialDay(d.Day); ok {
			fmt.Fprintf(w, " %s %s", deco.Emoji, deco.Label)
		}
		fmt.Fprintln(w)
		for _, wg := range d.WinGroups {
			fmt.Fprintf(w, "  %s (%s)\n", wg.Prize, wg.Sponsor)
			numbers := match.DisplayNumbers(wg, members)
			winners := match.GroupWinners(wg, members)
			for _, n := range numbers {
				mark := ""
				for _, m := range winners {
					if m.Number == n {
						mark = " <- " + m.Name
						break
					}
				}
				fmt.Fprintf(w, "    %s%s\n", n, mark)
			}
		}
	}
	return nil
}

func formatWin(e advent.WinEntry) string {
	return fmt.Sprintf("Day %2d: %s %s (%s) won %s from %s", e.Day, e.Member.Avatar, e.Member.Name, e.Member.Number, e.Prize, e.Sponsor)
}
