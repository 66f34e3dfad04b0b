package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending/lending/app"
)

func newMigrateCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the events and snapshots tables if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := startBootstrap(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer rt.close()

			creator, ok := rt.eventStore.(app.SchemaCreator)
			if !ok {
				return fmt.Errorf("%w: %s has no schema", app.ErrUnsupportedStore, rt.cfg.Store)
			}

			if err = creator.CreateSchema(cmd.Context()); err != nil {
				return err
			}

			rt.logger.Info("schema created", "events_table", rt.cfg.EventsTable, "snapshots_table", rt.cfg.SnapshotsTable)

			return nil
		},
	}
}
