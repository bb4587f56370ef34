package commands

import (
	"Aahar-Backend/cmd/config"
	migration "Aahar-Backend/cmd/database/migrate"
	"Aahar-Backend/internal/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		if migrateOnStart {
			if err := migration.Migrate(db); err != nil {
				return err
			}
		}

		app, err := config.NewApp(db)
		if err != nil {
			return err
		}

		port := utils.GetConfig("APP_PORT")
		if port == "" {
			port = "8080"
		}

		go func() {
			if err := app.Listen(":" + port); err != nil {
				log.Fatalf("server stopped: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("Shutting down server")
		return app.ShutdownWithTimeout(15 * time.Second)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "run database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
