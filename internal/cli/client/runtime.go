package client

import (
	"github.com/cloo-solutions/digest/internal/config"
	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/cloo-solutions/digest/internal/logger"
	"github.com/cloo-solutions/digest/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AddPersistentFlags registers the flags every client command reads.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("output", false, "Output as JSON")
	cmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cmd.PersistentFlags().Bool("sample", false, "Use built-in sample data instead of the API (overrides env and config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
}

// Runtime bundles what a command needs to talk to the facade.
type Runtime struct {
	Facade   *feed.Facade
	Settings Settings
	Log      *zap.Logger

	shutdown func()
}

// NewRuntime resolves settings for cmd and builds the facade. Tracing is
// attached when DIGEST_SENTRY_DSN is set.
func NewRuntime(cmd *cobra.Command) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	settings, err := resolveSettings(cmd, cfg)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level := cfg.LogLevel
		if level == "info" {
			level = "debug"
		}
		if l, err := logger.New(logger.Config{Level: level, Development: true}); err == nil {
			log = l
		}
	}

	rt := &Runtime{Settings: settings, Log: log, shutdown: func() {}}

	facade := feed.New(feed.Config{
		UseSampleData: settings.UseSampleData,
		BaseURL:       settings.APIURL,
	})

	if cfg.HasSentry() {
		shutdown, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: cfg.TracesSampleRate(),
			Debug:            cfg.Debug,
		}, log)
		if err == nil {
			rt.shutdown = shutdown
			facade = feed.NewWithProvider(telemetry.TraceProvider(facade.Provider(), facade.Mode()), facade.Mode())
		}
	}

	rt.Facade = facade

	log.Debug("facade ready",
		zap.String("mode", string(facade.Mode())),
		zap.String("api_url", settings.APIURL),
		zap.String("api_url_source", string(settings.APIURLSource)),
		zap.String("sample_source", string(settings.UseSampleDataSource)),
	)

	return rt, nil
}

// Close flushes tracing and logs.
func (rt *Runtime) Close() {
	rt.shutdown()
	_ = rt.Log.Sync()
}
