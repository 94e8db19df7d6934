package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shanehull/bultentakip/internal/ai"
	"github.com/shanehull/bultentakip/internal/config"
	"github.com/shanehull/bultentakip/internal/history"
	"github.com/shanehull/bultentakip/internal/ing"
	"github.com/shanehull/bultentakip/internal/logger"
	"github.com/shanehull/bultentakip/internal/metrics"
	"github.com/shanehull/bultentakip/internal/notify"
	"github.com/shanehull/bultentakip/internal/report"
	"github.com/shanehull/bultentakip/internal/storage"
	"github.com/shanehull/bultentakip/internal/tracker"
)

var (
	envFile  string
	logLevel string
	dryRun   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Dotenv file to read settings from (ignored if missing).")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (trace, debug, info, warn, error).")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fetch and compare only; do not download, upload, email or save.")
}

var rootCmd = &cobra.Command{
	Use:           "bultentakip",
	Short:         "bultentakip archives new ING monthly economic bulletins to Dropbox and sends an email for each.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, dryRun)
	},
}

// runPass runs the tracker once and prints its report. A dry run prints the
// listing with new bulletins marked; a full run prints what was processed.
func runPass(cmd *cobra.Command, dry bool) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	cfg := env.cfg
	client, err := ing.NewClient(cfg.BulletinURL, cfg.HTTPTimeout)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	t := tracker.New(tracker.Deps{
		Fetcher:    client,
		Downloader: client,
		Uploader:   storage.NewDropbox(cfg.Dropbox, cfg.HTTPTimeout),
		Notifier: notify.NewNotifier(
			notify.NewHTMLEmailRenderer(),
			notify.NewEmailSender(cfg.Email),
			cfg.Email.Enabled(),
		),
		Summarizer: ai.NewSummarizer(cfg.Gemini.APIKey, cfg.Gemini.Model),
		Store:      env.store,
		Metrics:    recorder,
	}, tracker.Options{
		DownloadDir: cfg.DownloadDir,
		Location:    cfg.Location(),
		DryRun:      dry,
	}, env.log)

	res, runErr := t.Run(cmd.Context())

	if cfg.Metrics.Enabled() && !dry {
		if err := recorder.WriteTextfile(cfg.Metrics.File); err != nil {
			env.log.Error().Err(err).Msg("failed to write metrics file")
		}
	}

	if res != nil {
		out := cmd.OutOrStdout()
		if dry {
			report.PrintSnapshot(out, res.Current, res.Previous)
		} else {
			report.PrintOutcomes(out, res.Outcomes)
		}
	}

	return runErr
}

type environment struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *history.Store
	closer io.Closer
}

func (e *environment) Close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*environment, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}

	log, closer, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}

	store := history.NewStore(cfg.CacheFile)

	log.Debug().
		Str("listing", cfg.BulletinURL).
		Str("cache", store.FilePath()).
		Bool("dropbox", cfg.Dropbox.Enabled()).
		Bool("email", cfg.Email.Enabled()).
		Bool("gemini", cfg.Gemini.Enabled()).
		Msg("configuration loaded")

	return &environment{cfg: cfg, log: log, store: store, closer: closer}, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
