package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDay     SortOrder = "day"
	SortByMember  SortOrder = "member"
	SortBySponsor SortOrder = "sponsor"
)

// Valid reports whether s is a known sort order
func (s SortOrder) Valid() bool {
	switch s {
	case SortByDay, SortByMember, SortBySponsor:
		return true
	}
	return false
}

// sortWins sorts wins based on the specified sort order
func sortWins(wins []advent.WinEntry, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDay:
		sort.SliceStable(wins, func(i, j int) bool {
			return compareByDay(wins[i], wins[j])
		})
	case SortByMember:
		sort.SliceStable(wins, func(i, j int) bool {
			ni, nj := strings.ToLower(wins[i].Member.Name), strings.ToLower(wins[j].Member.Name)
			if ni != nj {
				return ni < nj
			}
			// If names are equal, sort by day
			return compareByDay(wins[i], wins[j])
		})
	case SortBySponsor:
		sort.SliceStable(wins, func(i, j int) bool {
			si, sj := strings.ToLower(wins[i].Sponsor), strings.ToLower(wins[j].Sponsor)
			if si != sj {
				return si < sj
			}
			return compareByDay(wins[i], wins[j])
		})
	}
}

// compareByDay returns true if win i should come before win j
func compareByDay(i, j advent.WinEntry) bool {
	if i.Day != j.Day {
		return i.Day < j.Day
	}
	return i.Member.Number < j.Member.Number
}
