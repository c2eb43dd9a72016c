package cli

import (
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/logger"
)

func newCheckCmd(o *options) *cobra.Command {
	var (
		flagSimulate     bool
		flagDryRunNotify bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch the winner list and report new wins",
		Long: `Fetch the winner list once, falling back to archived or demo data,
and match it against the registered tickets. New wins are sent to Telegram
when TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are set.
Exits with code 2 when new wins were found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := o.outputFormat()

			n, err := o.notifier(flagDryRunNotify, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			t, err := o.newTracker(n)
			if err != nil {
				return err
			}

			res, err := t.Check(cmd.Context(), flagSimulate)
			if err != nil {
				return err
			}
			logger.Debug("Check finished", logger.Fields{"source": string(res.Source), "days": res.Days})

			if err := WriteCheck(cmd.OutOrStdout(), res, format, o.verbose); err != nil {
				return err
			}

			if len(res.NewWins) > 0 {
				o.exitCode = ExitNewWins
			}
			return nil
		},
	}

	o.addPipelineFlags(cmd)
	cmd.Flags().BoolVar(&flagSimulate, "simulate", false, "Use demo data instead of fetching")
	cmd.Flags().BoolVar(&flagDryRunNotify, "dry-run-notify", false, "Print notifications instead of sending them")

	return cmd
}
