package main

import (
	"github.com/spf13/cobra"

	dbpkg "github.com/nannyhub/babysitter-api/internal/db"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := dbpkg.NewDB(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			a.log.Info("migrations applied")
			return nil
		},
	}
}
