package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lab_dashboard/internal/repository"
	"lab_dashboard/internal/repository/db"
	"lab_dashboard/internal/service"
)

var (
	newUsername string
	newPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a dashboard user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if newUsername == "" || newPassword == "" {
			return errors.New("--username and --password are required")
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		conn, err := db.InitDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		auth := service.NewAuthService(repository.NewUserRepository(conn), cfg.Auth.SigningKey, cfg.Auth.TokenTTL)
		id, err := auth.SignUp(cmd.Context(), newUsername, newPassword)
		if err != nil {
			return fmt.Errorf("create user %q: %w", newUsername, err)
		}

		log.Infow("user_created", "user_id", id, "username", newUsername)
		fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", newUsername, id)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&newUsername, "username", "", "username")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "password")
}
