// Package filter narrows a list of wins down to the ones a user is interested in.
//
// Criteria:
//   - Day range (first/last calendar day, inclusive)
//   - Sponsors (substring matching, case-insensitive)
//   - Prizes (substring matching, case-insensitive)
//   - Members (name substring or exact ticket number)
//   - Special days only (Nikolaus, Advent Sundays, Heiligabend)
//
// Example usage:
//
//	f, err := filter.Parse("day:1-6 sponsor:weingut")
//	if err != nil {
//		return err
//	}
//	filtered := f.Apply(wins)
package filter

import (
	"strings"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// Filter represents win filtering criteria
type Filter struct {
	// Day range filtering, 0 means open
	DayFrom int `json:"day_from,omitempty"`
	DayTo   int `json:"day_to,omitempty"`

	// Sponsor filtering (case-insensitive substring match)
	Sponsors []string `json:"sponsors,omitempty"`

	// Prize filtering (case-insensitive substring match)
	Prizes []string `json:"prizes,omitempty"`

	// Member filtering: name substring (case-insensitive) or exact ticket number
	Members []string `json:"members,omitempty"`

	// Only days with a decoration
	SpecialOnly bool `json:"special_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all wins until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Sponsors: []string{},
		Prizes:   []string{},
		Members:  []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DayFrom == 0 &&
		f.DayTo == 0 &&
		len(f.Sponsors) == 0 &&
		len(f.Prizes) == 0 &&
		len(f.Members) == 0 &&
		!f.SpecialOnly
}

// Matches checks if a win matches all active filter criteria.
// An empty filter matches all wins.
func (f *Filter) Matches(w advent.WinEntry) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DayFrom > 0 && w.Day < f.DayFrom {
		return false
	}
	if f.DayTo > 0 && w.Day > f.DayTo {
		return false
	}

	if f.SpecialOnly {
		if _, ok := advent.SpecialDay(w.Day); !ok {
			return false
		}
	}

	if !containsAny(w.Sponsor, f.Sponsors) {
		return false
	}
	if !containsAny(w.Prize, f.Prizes) {
		return false
	}

	if len(f.Members) > 0 {
		matched := false
		for _, m := range f.Members {
			if w.Member.Number == m || strings.Contains(strings.ToLower(w.Member.Name), strings.ToLower(m)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns only the matching wins. If the filter is empty, the original
// list is returned unchanged.
func (f *Filter) Apply(wins []advent.WinEntry) []advent.WinEntry {
	if f.IsEmpty() {
		return wins
	}

	filtered := make([]advent.WinEntry, 0, len(wins))
	for _, w := range wins {
		if f.Matches(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// containsAny reports whether s contains one of needles (case-insensitive).
// No needles matches everything.
func containsAny(s string, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// String returns a human-readable description of the filter
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No filters active"
	}

	var parts []string
	switch {
	case f.DayFrom > 0 && f.DayTo > 0 && f.DayFrom == f.DayTo:
		parts = append(parts, "Day: "+itoa(f.DayFrom))
	case f.DayFrom > 0 || f.DayTo > 0:
		from, to := "1", "24"
		if f.DayFrom > 0 {
			from = itoa(f.DayFrom)
		}
		if f.DayTo > 0 {
			to = itoa(f.DayTo)
		}
		parts = append(parts, "Days: "+from+"-"+to)
	}
	if len(f.Sponsors) > 0 {
		parts = append(parts, "Sponsors: "+strings.Join(f.Sponsors, ", "))
	}
	if len(f.Prizes) > 0 {
		parts = append(parts, "Prizes: "+strings.Join(f.Prizes, ", "))
	}
	if len(f.Members) > 0 {
		parts = append(parts, "Members: "+strings.Join(f.Members, ", "))
	}
	if f.SpecialOnly {
		parts = append(parts, "Special days only")
	}
	return strings.Join(parts, " | ")
}
