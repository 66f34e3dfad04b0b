package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending/lending/app"
)

func newScanOverdueCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan-overdue",
		Short: "Log every overdue borrow record once and print their number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := startBootstrap(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer rt.close()

			handlers, err := app.NewHandlers(rt.eventStore, rt.obs)
			if err != nil {
				return err
			}

			count, err := handlers.OverdueScanner.Scan(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)

			return err
		},
	}
}
