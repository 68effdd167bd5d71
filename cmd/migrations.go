package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/db/migrator"
	"github.com/spf13/cobra"
)

func prompt(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func newMigrator() (*migrator.Migrator, error) {
	sqlDB, err := db.NewSqlDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	return migrator.New(sqlDB), nil
}

func newMigrationsResetCmd() *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !prompt("Are you sure? This operation is irreversible.") {
					return errors.New("canceled")
				}
			}
			m, err := newMigrator()
			if err != nil {
				return err
			}
			fmt.Println("resetting database...")
			if err := m.Reset(); err != nil {
				return err
			}
			fmt.Println("database successfully reset")
			return nil
		},
	}
	reset.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "yes")
	return reset
}

func newMigrationsCmd() *cobra.Command {
	migration := &cobra.Command{
		Use:               "migrations",
		Short:             "Manage database migrations",
		Long:              ``,
		PersistentPreRunE: loadConfig,
	}

	migration.PersistentFlags().StringVarP(&configurationFile, "config", "", "", "The configuration filename")

	migration.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the migration status",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			version, dirty, err := m.Status()
			if err != nil {
				return err
			}

			if dirty {
				fmt.Printf("%d (dirty)\n", version)
			} else {
				fmt.Printf("%d\n", version)
			}
			return nil
		},
	})

	migration.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run any new migrations",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator()
			if err != nil {
				return err
			}
			if err := m.Up(); err != nil {
				return err
			}
			fmt.Println("database is up-to-date")
			return nil
		},
	})

	migration.AddCommand(newMigrationsResetCmd())

	return migration
}
