package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sportloan",
	Short: "Sport equipment loan tracker CLI",
	Long:  "Maintenance commands for the sport equipment loan tracker: migrations, imports, cron jobs.",
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
