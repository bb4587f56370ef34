package commands

import (
	"Aahar-Backend/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "aahar",
	Short: "Aahar food donation platform",
	Long: `Aahar connects food donors with volunteers and recipients. It serves
the HTTP API and manages the database schema.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfigFrom(configPath)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			log.Errorf("failed to display help: %v", err)
		}
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", utils.DefaultConfigPath, "path to the YAML config file")
}
