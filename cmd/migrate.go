package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"sportloan.GO/config"
	"sportloan.GO/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply embedded schema migrations to the MySQL database",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrations.New(config.MySQLDSN())
		if err != nil {
			fmt.Printf("Migrator setup failed: %v\n", err)
			os.Exit(1)
		}
		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Schema already up to date.")
			return
		}
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back all migrations")
	rootCmd.AddCommand(migrateCmd)
}
