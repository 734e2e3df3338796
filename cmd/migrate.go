package cmd

import (
	"github.com/jrschumacher/casting-agency/internal/db"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the actors and movies tables if they do not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbService, err := db.NewService(cfg)
		if err != nil {
			return err
		}
		defer dbService.Close()

		if err := dbService.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Schema applied", "driver", string(dbService.Driver()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
