package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeremiapane/restaurant-orders/config"
)

// restaurant migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables and the configured administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations complete.")
		return nil
	},
}

var adminFlags config.AdminCredentials

// restaurant create-admin --username --email --password
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !adminFlags.Complete() {
			return fmt.Errorf("--username, --email and --password are required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		user, err := a.users.CreateAdmin(cmd.Context(), adminFlags)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Administrator %s (%s) created.\n", user.Username, user.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.Username, "username", "", "administrator username")
	createAdminCmd.Flags().StringVar(&adminFlags.Email, "email", "", "administrator email")
	createAdminCmd.Flags().StringVar(&adminFlags.Password, "password", "", "administrator password")
}
