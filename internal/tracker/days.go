package tracker

import (
	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/match"
)

// WinGroupView is a win group prepared for display
type WinGroupView struct {
	Prize   string          `json:"prize"`
	Sponsor string          `json:"sponsor"`
	Numbers []string        `json:"numbers"`
	Winners []advent.Member `json:"winners"`
}

// DayView is one calendar day prepared for display
type DayView struct {
	Day          int                `json:"day"`
	Decoration   *advent.Decoration `json:"decoration,omitempty"`
	Winners      []advent.Member    `json:"winners"`
	WinningGroup int                `json:"winningGroup"`
	WinGroups    []WinGroupView     `json:"winGroups"`
}

// BuildDayViews orders each group's numbers with registered tickets first and
// attaches the winners per day and per group.
func BuildDayViews(days []advent.DayData, members []advent.Member) []DayView {
	views := make([]DayView, 0, len(days))
	for _, d := range days {
		v := DayView{
			Day:          d.Day,
			Winners:      match.DayWinners(d, members),
			WinningGroup: match.WinningGroupIndex(d, members),
			WinGroups:    make([]WinGroupView, 0, len(d.WinGroups)),
		}
		if deco, ok := advent.SpecialDay(d.Day); ok {
			v.Decoration = &deco
		}
		for _, wg := range d.WinGroups {
			v.WinGroups = append(v.WinGroups, WinGroupView{
				Prize:   wg.Prize,
				Sponsor: wg.Sponsor,
				Numbers: match.DisplayNumbers(wg, members),
				Winners: match.GroupWinners(wg, members),
			})
		}
		views = append(views, v)
	}
	return views
}

// Days returns the stored day data prepared for display
func (t *Tracker) Days() ([]DayView, error) {
	state, err := t.load()
	if err != nil {
		return nil, err
	}
	return BuildDayViews(state.DayData, advent.AllMembers(state.Groups)), nil
}
