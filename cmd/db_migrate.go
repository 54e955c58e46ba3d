package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"warehouse.GO/config"
	"warehouse.GO/model/migrations"
)

var (
	migrateDown    int
	migrateVersion bool
)

var dbMigrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations (golang-migrate on MySQL, auto-migrate on SQLite)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		db, err := openDB()
		if err != nil {
			return err
		}
		mysql := db.Dialector.Name() == "mysql"
		if (migrateVersion || migrateDown > 0) && !mysql {
			return fmt.Errorf("--version and --down need DB_DRIVER=mysql")
		}
		switch {
		case migrateVersion:
			v, dirty, err := migrations.Version(config.MySQLDSN())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema version: %d (dirty=%v)\n", v, dirty)
			return nil
		case migrateDown > 0:
			if err := migrations.Down(config.MySQLDSN(), migrateDown); err != nil {
				return err
			}
			fmt.Fprintf(out, "Rolled back %d migration(s)\n", migrateDown)
			return nil
		}
		if err := migrations.Migrate(db, config.MySQLDSN()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Schema up to date (%s)\n", db.Dialector.Name())
		return nil
	},
}

func init() {
	dbMigrateCmd.Flags().IntVar(&migrateDown, "down", 0, "Roll back N migrations (MySQL only)")
	dbMigrateCmd.Flags().BoolVar(&migrateVersion, "version", false, "Print the applied schema version (MySQL only)")
	rootCmd.AddCommand(dbMigrateCmd)
}
