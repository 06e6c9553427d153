// Command foodexpress runs the FoodExpress API and its maintenance tasks.
//
//	@title						FoodExpress API
//	@version					1.0
//	@description				Accounts, device sessions, catalog and carts for the FoodExpress client.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "foodexpress",
	Short:         "FoodExpress delivery API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
