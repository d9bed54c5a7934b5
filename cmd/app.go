package cmd

import (
	"github.com/spf13/cobra"
)

// appCmd represents the app command
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "used to run the roster service",
	Long: `The roster service is a server rendered web application for employee
and department records (this command is not ran directly)`,
}

func init() {
	rootCmd.AddCommand(appCmd)
}
