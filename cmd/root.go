package cmd

import (
	"os"
	"strings"

	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "casting",
	Short:        "Casting agency CLI",
	Long:         `casting: REST API for actors and movies guarded by bearer token permissions`,
	SilenceUsage: true,
	// Flags win over the config file and environment.
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()
		changed := false
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
			cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
			changed = true
		}
		if flags.Changed("log-format") {
			cfg.LogFormat, _ = flags.GetString("log-format")
			changed = true
		}
		if changed {
			logger.InitWithFormat(cfg.LogLevel, cfg.LogFormat)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("log-format", "", "override LOG_FORMAT (text, json)")
}

func Execute(c *config.Config) {
	cfg = c
	logger.Info("Starting CLI", "env", cfg.AppEnv)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("CLI error", "error", err)
		os.Exit(1)
	}
}
