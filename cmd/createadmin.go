/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zinal-app/apiserver/config"
	"github.com/zinal-app/apiserver/internal/db"
	"github.com/zinal-app/apiserver/internal/services"
	"github.com/zinal-app/apiserver/internal/store"
)

const defaultAdminEmail = "admin@zinal.com"

var createAdminPassword string

// createAdminCmd bootstraps the first admin account. Safe to re-run: does
// nothing when the account already exists.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the bootstrap admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer dbConn.Close()

		userService := services.NewUserService(store.NewUserRepository(dbConn))

		if _, err := userService.Create(cmd.Context(), services.CreateParams{
			Email:    defaultAdminEmail,
			Username: defaultAdminEmail,
			Password: createAdminPassword,
			IsAdmin:  true,
		}); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				fmt.Fprintln(os.Stdout, "admin already exists")
				return nil
			}
			return fmt.Errorf("create admin failed: %w", err)
		}

		fmt.Fprintln(os.Stdout, "admin created")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().StringVar(&createAdminPassword, "password", "admin123", "password for the admin account")
}
