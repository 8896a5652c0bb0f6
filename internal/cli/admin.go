package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/internal/service"
	"github.com/suteetoe/sareecatalog/pkg/database"
	"github.com/suteetoe/sareecatalog/pkg/jwtutil"
	"github.com/suteetoe/sareecatalog/pkg/logger"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
	}
	cmd.AddCommand(newAdminCreateCommand())
	return cmd
}

func newAdminCreateCommand() *cobra.Command {
	var in service.AdminInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin user without the HTTP shared secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.GetLogger().Sync()
			defer database.Close(db)

			admins := service.NewAdminService(repository.New(db), jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
				SigningKey:      cfg.JWT.SigningKey,
				ExpirationHours: cfg.JWT.ExpirationHours,
			}))
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			admin, err := admins.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.FullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&in.Password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("full-name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
