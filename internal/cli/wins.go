package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/calendar"
	"github.com/pfrederiksen/advent-wins/internal/filter"
	"github.com/pfrederiksen/advent-wins/internal/logger"
	"github.com/pfrederiksen/advent-wins/internal/match"
)

func newWinsCmd(o *options) *cobra.Command {
	var flagSort, flagICS, flagFilter string

	cmd := &cobra.Command{
		Use:   "wins",
		Short: "List wins in the stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := o.outputFormat()

			order := SortOrder(strings.ToLower(flagSort))
			if !order.Valid() {
				return fmt.Errorf("invalid sort order: %s (must be 'day', 'member' or 'sponsor')", flagSort)
			}

			f, err := filter.Parse(flagFilter)
			if err != nil {
				return err
			}

			store, err := o.openStore()
			if err != nil {
				return err
			}
			state, err := store.LoadState()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			wins := f.Apply(match.Match(state.DayData, advent.AllMembers(state.Groups)))
			sortWins(wins, order)
			if !f.IsEmpty() {
				logger.Debug("Filter applied", logger.Fields{"filter": f.String(), "wins": len(wins)})
			}

			if flagICS != "" {
				year := calendar.Year(o.cfg.EventEnd)
				if err := os.WriteFile(flagICS, []byte(calendar.GenerateICS(wins, year, time.Now())), 0644); err != nil {
					return fmt.Errorf("writing calendar: %w", err)
				}
				logger.Info("Calendar written", logger.Fields{"path": flagICS, "wins": len(wins)})
			}

			return WriteWins(cmd.OutOrStdout(), &WinsResult{
				DataSource: state.DataSource,
				LastCheck:  state.LastCheck,
				Wins:       wins,
			}, format, o.verbose)
		},
	}

	cmd.Flags().StringVar(&flagSort, "sort", string(SortByDay), "Sort order: day, member or sponsor")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "Filter query, e.g. \"day:1-6 sponsor:weingut member:oma special\"")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write the wins as an iCalendar file to this path")

	return cmd
}
