// Package cli defines the saree-catalog command line
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/pkg/config"
	"github.com/suteetoe/sareecatalog/pkg/database"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRootCommand builds the command tree. Running the bare command serves
// HTTP.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "saree-catalog",
		Short:         "Saree catalog admin and client API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newAdminCommand())
	return root
}

// bootstrap loads configuration, initializes logging and opens a migrated
// database
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	log := logger.GetLogger()
	log.Info("Configuration loaded", cfg.LogFields()...)

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connection established", zap.String("driver", cfg.DB.Driver))

	if err := database.MigrateModels(db, model.Tables...); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	log.Info("Database migrations completed")

	return cfg, db, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.GetLogger().Sync()
			return database.Close(db)
		},
	}
}
