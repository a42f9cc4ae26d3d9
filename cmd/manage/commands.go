package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"review_system/internal/config"
	"review_system/internal/db"
	"review_system/internal/domain"
	"review_system/internal/repository"
	"review_system/internal/service"
)

// openDB connects using the environment configuration
var openDB = func() (*gorm.DB, *config.Config, error) {
	cfg := config.LoadConfig()
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return gdb, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:          "manage",
	Short:        "Administrative tasks for the review API",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, _, err := openDB()
		if err != nil {
			return err
		}
		return db.Migrate(gdb)
	},
}

var (
	superUsername string
	superEmail    string
	superRole     string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active superuser, or promote an existing user",
	Long: `Create an active superuser that passes every role check.
If the username already exists the account is promoted instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, cfg, err := openDB()
		if err != nil {
			return err
		}
		users := service.NewUserService(repository.NewUserRepository(gdb), cfg.ReservedUsernames, nil)
		return createSuperuser(cmd.Context(), users, superUsername, superEmail, domain.Role(superRole))
	},
}

func createSuperuser(ctx context.Context, users *service.UserService, username, email string, role domain.Role) error {
	u, err := users.CreateSuperuser(ctx, username, email, role)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}
	logrus.WithFields(logrus.Fields{"username": u.Username, "role": u.Role}).Info("Superuser ready")
	return nil
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superUsername, "username", "", "username of the superuser")
	createSuperuserCmd.Flags().StringVar(&superEmail, "email", "", "email of the superuser")
	createSuperuserCmd.Flags().StringVar(&superRole, "role", string(domain.RoleAdmin), "role stored for the superuser")
	_ = createSuperuserCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(migrateCmd, createSuperuserCmd)
}
