package cmd

import (
	"github.com/Pjt727/roster/data"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Runs the up migrations",
	Long:  `Runs the up migrations and errors if there the up migrations cannot work`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := data.MigrateUp(cfg.DbConn); err != nil {
			log.WithError(err).Fatal("Could not run up migrations")
		}
		log.Info("Database has been synced with any up migrations")
	},
}

func init() {
	appCmd.AddCommand(upCmd)
}
