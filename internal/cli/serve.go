package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/calendar"
	"github.com/pfrederiksen/advent-wins/internal/config"
	"github.com/pfrederiksen/advent-wins/internal/server"
)

func newServeCmd(o *options) *cobra.Command {
	var flagListen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := o.notifier(false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			t, err := o.newTracker(n)
			if err != nil {
				return err
			}

			if !o.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			end, _ := config.ParseEventEnd(o.eventEnd)
			h := server.NewHandler(t, calendar.Year(end))
			return server.Run(ctx, flagListen, server.NewRouter(h))
		},
	}

	o.addPipelineFlags(cmd)
	cmd.Flags().StringVar(&flagListen, "listen", o.cfg.Listen, "Listen address (or env: "+config.EnvListen+")")

	return cmd
}
