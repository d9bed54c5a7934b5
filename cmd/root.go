package cmd

import (
	"os"

	"github.com/Pjt727/roster/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "roster keeps employee and department records behind a login",
	Long: `Roster serves pages for managing employees, departments and an
image gallery. Use the app commands to run the server or prepare the database`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig is shared by every command that needs the environment
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Could not load configuration")
	}
	log.SetLevel(cfg.LogLevel)
	return cfg
}
