/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/evergreen-power/apiserver/config"
	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move collections between store backends",
}

var migrateFirebaseCmd = &cobra.Command{
	Use:   "firebase",
	Short: "Copy the local JSON collections into Firebase",
	Long: `Reads leads and users from the local file store and overwrites the
Firebase Realtime Database with them. One-shot; any storage error aborts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		local, err := docstore.NewLocalStore(cfg.Store.DataDir)
		if err != nil {
			return fmt.Errorf("open local store: %w", err)
		}
		remote, err := docstore.NewFirebaseStore(ctx, cfg.Store.Firebase)
		if err != nil {
			return fmt.Errorf("open firebase store: %w", err)
		}

		leads, err := local.LoadLeads(ctx)
		if err != nil {
			return fmt.Errorf("load leads: %w", err)
		}
		if err := remote.SaveLeads(ctx, leads); err != nil {
			return fmt.Errorf("save leads: %w", err)
		}
		fmt.Printf("migrated %d leads\n", len(leads))

		users, err := local.LoadUsers(ctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		if err := remote.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("save users: %w", err)
		}
		fmt.Printf("migrated %d users\n", len(users))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateFirebaseCmd)
}
