package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yeremiapane/restaurant-orders/utils"
)

var rootCmd = &cobra.Command{
	Use:   "restaurant",
	Short: "Restaurant ordering web application",
	Long:  "Serves the ordering site. Run without a subcommand to start the HTTP server.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger()
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}
