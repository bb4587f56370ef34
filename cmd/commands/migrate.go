package commands

import (
	"Aahar-Backend/cmd/config"
	migration "Aahar-Backend/cmd/database/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		return migration.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
