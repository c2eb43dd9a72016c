package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/archive"
	"github.com/pfrederiksen/advent-wins/internal/config"
	"github.com/pfrederiksen/advent-wins/internal/logger"
	"github.com/pfrederiksen/advent-wins/internal/notifier"
	"github.com/pfrederiksen/advent-wins/internal/pipeline"
	"github.com/pfrederiksen/advent-wins/internal/scraper"
	"github.com/pfrederiksen/advent-wins/internal/simulate"
	"github.com/pfrederiksen/advent-wins/internal/storage"
	"github.com/pfrederiksen/advent-wins/internal/tracker"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNewWins = 2
)

// options carries flag values and the exit code of one invocation
type options struct {
	cfg    *config.Config
	cfgErr error

	dataDir  string
	format   string
	logLevel string
	verbose  bool

	sourceURL string
	relayURL  string
	fallback  string
	eventEnd  string

	exitCode int
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(o *options) *cobra.Command {
	o.cfg, o.cfgErr = config.Load()
	if o.cfgErr != nil {
		o.cfg = config.Default()
	}

	cmd := &cobra.Command{
		Use:   "advent-wins",
		Short: "Track advent calendar raffle wins",
		Long: `A tool to check the Lions Club Bad Dürkheim advent calendar for wins.
Registered ticket numbers are matched against the published winner list;
new wins are reported once.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
	}

	cmd.PersistentFlags().StringVar(&o.dataDir, "data-dir", o.cfg.DataDir, "Data directory for state and archive (or env: "+config.EnvDataDir+")")
	cmd.PersistentFlags().StringVar(&o.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", string(o.cfg.LogLevel), "Log level: debug, info, warn, error (or env: "+config.EnvLogLevel+")")
	cmd.PersistentFlags().BoolVar(&o.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newCheckCmd(o),
		newWinsCmd(o),
		newServeCmd(o),
		newMembersCmd(o),
		newShareCmd(o),
		newSimulateCmd(o),
	)

	return cmd
}

// setup validates global flags and configures logging
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	if o.cfgErr != nil {
		return fmt.Errorf("loading configuration: %w", o.cfgErr)
	}

	if _, err := o.outputFormat(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return nil
}

func (o *options) outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}
	return format, nil
}

// addPipelineFlags registers the flags controlling data acquisition
func (o *options) addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.sourceURL, "source-url", o.cfg.SourceURL, "Winner page URL (or env: "+config.EnvSourceURL+")")
	cmd.Flags().StringVar(&o.relayURL, "relay-url", o.cfg.RelayURL, "Relay prefix, empty to fetch directly (or env: "+config.EnvRelayURL+")")
	cmd.Flags().StringVar(&o.fallback, "fallback", string(o.cfg.Fallback), "Without archive: error or simulate (or env: "+config.EnvFallback+")")
	cmd.Flags().StringVar(&o.eventEnd, "event-end", o.cfg.EventEnd.Format(config.DateLayout), "Date after which only archived data is used (or env: "+config.EnvEventEnd+")")
}

func (o *options) openStore() (*storage.Storage, error) {
	store, err := storage.New(o.dataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	logger.Debug("Using data directory", logger.Fields{"data_dir": store.DataDir()})
	return store, nil
}

// newTracker wires storage, scraper, archive, simulator and pipeline
func (o *options) newTracker(n notifier.Notifier) (*tracker.Tracker, error) {
	fallback, err := pipeline.ParseFallback(o.fallback)
	if err != nil {
		return nil, err
	}
	end, err := config.ParseEventEnd(o.eventEnd)
	if err != nil {
		return nil, err
	}

	store, err := o.openStore()
	if err != nil {
		return nil, err
	}

	sc := scraper.NewWithURLs(o.sourceURL, o.relayURL)
	logger.Debug("Acquisition configured", logger.Fields{
		"request_url": sc.RequestURL(),
		"fallback":    string(fallback),
		"event_end":   o.eventEnd,
	})

	p := pipeline.New(
		sc,
		archive.First(store.Archive(), archive.Bundled()),
		simulate.New(),
		pipeline.WithFallback(fallback),
		pipeline.WithEventEnd(end),
	)
	return tracker.New(store, p, n), nil
}

// notifier picks the dry-run printer, Telegram, or nothing
func (o *options) notifier(dryRun bool, out io.Writer) (notifier.Notifier, error) {
	if dryRun {
		return notifier.NewDryRunNotifier(out), nil
	}
	if o.cfg.TelegramEnabled() {
		return notifier.NewTelegramNotifier(o.cfg.TelegramToken, o.cfg.TelegramChatID)
	}
	return notifier.Nop{}, nil
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	o := &options{}
	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return o.exitCode
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
