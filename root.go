package main

import (
	"fmt"
	"log/slog"
	"os"

	"japaneselinguistics/config"
	"japaneselinguistics/linguistics"
	"japaneselinguistics/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logFormat string
	activeCfg *config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "jaling",
		Short:         "Japanese tokenization for search indexing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = &loaded
			setupLogger(loaded.LogLevel, logFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newStemCmd())
	cmd.AddCommand(newSegmentCmd())
	cmd.AddCommand(newGramsCmd())
	cmd.AddCommand(newNormalizeCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr, format string) {
	lvl, err := logger.ParseLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(logger.New(os.Stderr, lvl, format))
}

func requireConfig() (config.Config, error) {
	if activeCfg == nil {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return *activeCfg, nil
}

// newLinguistics builds from the loaded configuration. It falls back to the
// simple tokenizer when the Japanese analyzer cannot be built.
func newLinguistics() (*linguistics.Linguistics, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return linguistics.Create(cfg, linguistics.WithLogger(slog.Default())), nil
}
