// Package cli contains all veritext commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"veritext/internal/config"
	"veritext/internal/detect"
	"veritext/internal/history"
	"veritext/internal/humanize"
	"veritext/internal/output"
	"veritext/internal/rewrite"
	"veritext/internal/service"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "veritext",
	Short: "AI-generated text detection and humanization",
	Long: `veritext scores text for machine-generation likelihood using an
ensemble of linguistic analyzers, and rewrites flagged text to read
naturally while preserving its meaning.

Example usage:
  veritext analyze essay.txt          # Score a document
  veritext analyze --text "..."       # Score inline text
  veritext humanize draft.txt         # Rewrite until it passes detection
  veritext history list               # Show past runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .veritext.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose || cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

func printer() *output.Printer {
	return output.NewPrinter(cfg.Output.Colors)
}

// buildService assembles the engine, pipeline, and store from config.
// The returned closer releases the history store when recording is on.
func buildService(seed int64) (*service.Service, func(), error) {
	engine := detect.NewEngine(detect.Config{
		CacheSize: cfg.Cache.Size,
		CacheTTL:  cfg.Cache.TTL,
	})

	var rewriter rewrite.Client
	if client, ok := rewrite.NewHTTP(rewrite.Config{
		Endpoint: cfg.Rewrite.Endpoint,
		APIKey:   cfg.Rewrite.APIKey,
		Model:    cfg.Rewrite.Model,
		Timeout:  cfg.Rewrite.Timeout,
	}); ok {
		rewriter = client
		logger.Debug("rewrite service configured", "endpoint", cfg.Rewrite.Endpoint)
	} else {
		logger.Debug("rewrite service not configured, running local-only")
	}

	rng := seededRand(seed)
	pipeline := humanize.NewPipeline(rewriter, rng, logger)
	refiner := humanize.NewRefiner(pipeline, engine, logger)

	var store *history.Store
	closer := func() {}
	if cfg.History.Enabled {
		var err error
		store, err = history.NewStore(cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		closer = func() { _ = store.Close() }
	}

	return service.New(engine, refiner, store, logger), closer, nil
}
