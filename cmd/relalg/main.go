// Command relalg evaluates relational algebra over the sample suppliers and
// parts database, and over relations loaded from JSON, Arrow, postgres and
// mysql sources named in a configuration file.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/internal/config"
	"github.com/jonlawlor/relalg/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// globalFlags are the flags shared by every command.
type globalFlags struct {
	configFile     string
	logLevel       string
	maxMaterialize int
	metricsFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "relalg",
		Short: "relalg - relational algebra over in-memory relations",
		Long: `relalg evaluates relational algebra expressions: restriction, projection,
renaming, union, difference, intersection, cross products and joins.

Relations are either the samples (suppliers, parts, orders) or sources named
in a YAML configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Log); err != nil {
				return err
			}
			rel.Configure(cfg.Engine.Options())
			logger.Get().Debug("configured",
				zap.String("config", flags.configFile),
				zap.Int("max_materialize", cfg.Engine.MaxMaterialize))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync() //nolint:errcheck
			if cfg.Metrics.File == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(cfg.Metrics.File, rel.Registry()); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to YAML configuration file (optional)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&flags.maxMaterialize, "max-materialize", 0, "Most rows a lazy relation may be drained into, 0 for no limit")
	root.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "Write engine metrics to this file in the prometheus text format")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "relalg v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "sources",
		Short: "List the relations which can be named",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Samples:")
			for _, name := range samples {
				fmt.Fprintf(out, "  - %s\n", name)
			}
			if len(cfg.Sources) == 0 {
				return
			}
			fmt.Fprintln(out, "\nConfigured:")
			for _, s := range cfg.Sources {
				fmt.Fprintf(out, "  - %s (%s)\n", s.Name, s.Kind)
			}
		},
	})

	root.AddCommand(newShowCmd(&cfg))
	root.AddCommand(newQueryCmd(&cfg))
	return root
}

// loadConfig reads the configuration file, if any, and lets explicitly set
// flags override it.
func loadConfig(cmd *cobra.Command, flags globalFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		var err error
		if cfg, err = config.Load(flags.configFile); err != nil {
			return nil, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if fs.Changed("max-materialize") {
		cfg.Engine.MaxMaterialize = flags.maxMaterialize
	}
	if fs.Changed("metrics-file") {
		cfg.Metrics.File = flags.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
