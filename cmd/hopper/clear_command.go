package main

import (
	"github.com/spf13/cobra"
)

func newClearCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLedger(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d ledger entries.\n", removed)
			return nil
		},
	}
}
