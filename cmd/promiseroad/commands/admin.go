package commands

import (
	"context"
	"fmt"

	"github.com/promiseroad/backend/internal/models"
	"github.com/promiseroad/backend/internal/repositories"
	"github.com/promiseroad/backend/internal/services"
	"github.com/promiseroad/backend/libs/auth/service"
	"github.com/promiseroad/backend/libs/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Create-admin flags
	adminUsername  string
	adminEmail     string
	adminPassword  string
	adminFirstName string
	adminLastName  string
)

// createAdminCmd creates an administrator account
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator account. Registration over HTTP only creates viewers and creators.

Example:
  promiseroad create-admin --username admin --email admin@example.com --password secret1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		authService := services.NewAuthService(
			repositories.NewUserRepository(db, logger.Logger),
			service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.Expiry),
			logger.Logger,
		)

		user, err := authService.CreateAdmin(context.Background(), &models.RegisterRequest{
			Username:  adminUsername,
			Email:     adminEmail,
			Password:  adminPassword,
			FirstName: adminFirstName,
			LastName:  adminLastName,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		logger.Logger.Info("Admin created", zap.Int("user_id", user.ID))
		cmd.Printf("Created admin %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	createAdminCmd.Flags().StringVar(&adminFirstName, "first-name", "", "Admin first name")
	createAdminCmd.Flags().StringVar(&adminLastName, "last-name", "", "Admin last name")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
