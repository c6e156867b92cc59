package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/pitchfund/internal/config"
	"github.com/deppfellow/pitchfund/internal/database"
	"github.com/deppfellow/pitchfund/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			loggerService := logger.NewLoggerService(cfg.Observability)
			defer loggerService.Shutdown()

			log := logger.NewLoggerWithService(cfg.Observability, loggerService)

			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}

			log.Info().Msg("database migrated")
			return nil
		},
	}
}
