package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/simulate"
)

func newSimulateCmd(o *options) *cobra.Command {
	var flagSeed uint64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print demo winner data for the registered tickets",
		Long: `Generate demo winner data without storing it. A registered ticket is
always placed among the winners of the last generated day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := o.openStore()
			if err != nil {
				return err
			}
			state, err := store.LoadState()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			gen := simulate.New()
			if cmd.Flags().Changed("seed") {
				gen = simulate.NewWithSource(rand.NewPCG(flagSeed, flagSeed), time.Now)
			}

			members := advent.AllMembers(state.Groups)
			format, _ := o.outputFormat()
			return WriteDays(cmd.OutOrStdout(), gen.Generate(members), members, format)
		},
	}

	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed for reproducible output")

	return cmd
}
