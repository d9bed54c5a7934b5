package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pjt727/roster/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the web server",
	Long:  `Migrates the database and then serves the site until interrupted`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cmd.Flags().Changed("port") {
			cfg.Port = portFlag
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.Serve(ctx, cfg); err != nil {
			log.WithError(err).Error("Server stopped")
			os.Exit(1)
		}
	},
}

func init() {
	appCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 8080, "Port to listen on, overrides PORT")
}
