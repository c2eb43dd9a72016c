// Package match cross-references drawn numbers with registered tickets.
//
// Matching is exact, byte-for-byte string equality on ticket numbers: "0042" does
// not match "42". All functions are pure; none of them modify their inputs.
package match

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// LiveWindow is how long a real acquisition counts as live
const LiveWindow = 15 * time.Minute

// Match returns one WinEntry per drawn number that equals a registered ticket.
// The first member (in stored order) holding the number wins the entry. A number
// drawn twice yields two entries.
func Match(days []advent.DayData, members []advent.Member) []advent.WinEntry {
	wins := make([]advent.WinEntry, 0)
	for _, d := range days {
		for _, wg := range d.WinGroups {
			for _, n := range wg.Numbers {
				m, ok := findMember(members, n)
				if !ok {
					continue
				}
				wins = append(wins, advent.WinEntry{
					Day:     d.Day,
					Member:  m,
					Prize:   wg.Prize,
					Sponsor: wg.Sponsor,
				})
			}
		}
	}
	return wins
}

// GroupWinners returns the members whose number appears in wg, one per occurrence
func GroupWinners(wg advent.WinGroup, members []advent.Member) []advent.Member {
	winners := make([]advent.Member, 0)
	for _, n := range wg.Numbers {
		if m, ok := findMember(members, n); ok {
			winners = append(winners, m)
		}
	}
	return winners
}

// DayWinners returns the distinct members who won anything on day.
// A non-empty result marks a winning day.
func DayWinners(day advent.DayData, members []advent.Member) []advent.Member {
	winners := make([]advent.Member, 0)
	seen := make(map[string]bool)
	for _, wg := range day.WinGroups {
		for _, m := range GroupWinners(wg, members) {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			winners = append(winners, m)
		}
	}
	return winners
}

// WinningGroupIndex returns the index of the first win group of day with a
// registered winner, or -1
func WinningGroupIndex(day advent.DayData, members []advent.Member) int {
	return slices.IndexFunc(day.WinGroups, func(wg advent.WinGroup) bool {
		return len(GroupWinners(wg, members)) > 0
	})
}

// DisplayNumbers returns a sorted copy of wg's numbers for display: registered
// numbers first, then the rest, each part in ascending lexicographic order.
func DisplayNumbers(wg advent.WinGroup, members []advent.Member) []string {
	registered := make(map[string]bool, len(members))
	for _, m := range members {
		registered[m.Number] = true
	}

	numbers := slices.Clone(wg.Numbers)
	slices.SortStableFunc(numbers, func(a, b string) int {
		if registered[a] != registered[b] {
			if registered[a] {
				return -1
			}
			return 1
		}
		return cmp.Compare(a, b)
	})
	return numbers
}

// IsLive reports whether data from source, checked at lastChecked, is fresh
// live data at now. Only real acquisitions within LiveWindow qualify.
func IsLive(source advent.DataSource, lastChecked, now time.Time) bool {
	if source != advent.SourceReal || lastChecked.IsZero() {
		return false
	}
	return now.Sub(lastChecked) < LiveWindow
}

// NotifiedSet records the wins a user has already been told about
type NotifiedSet map[string]bool

// Key identifies a win for notification purposes. Repeated occurrences of the
// same number in one win group share a key.
func Key(e advent.WinEntry) string {
	return strconv.Itoa(e.Day) + "|" + e.Member.ID + "|" + e.Member.Number + "|" + e.Sponsor + "|" + e.Prize
}

// Unnotified returns the entries not yet in notified (one per key) and a new
// set containing both the old and the returned keys. notified is not modified.
func Unnotified(entries []advent.WinEntry, notified NotifiedSet) ([]advent.WinEntry, NotifiedSet) {
	next := make(NotifiedSet, len(notified)+len(entries))
	for k := range notified {
		next[k] = true
	}

	fresh := make([]advent.WinEntry, 0)
	for _, e := range entries {
		k := Key(e)
		if next[k] {
			continue
		}
		next[k] = true
		fresh = append(fresh, e)
	}
	return fresh, next
}

func findMember(members []advent.Member, number string) (advent.Member, bool) {
	for _, m := range members {
		if m.Number == number {
			return m, true
		}
	}
	return advent.Member{}, false
}
