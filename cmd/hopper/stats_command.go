package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLedger(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.Totals(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"Metric", "Value"}
			rows := [][]string{
				{"Processed orders", strconv.FormatInt(totals.Processed, 10)},
				{"Total minutes", fmt.Sprintf("%.2f", totals.Minutes)},
				{"Daemon runs", strconv.FormatInt(totals.Runs, 10)},
				{"Ledger", store.Path()},
			}
			cmd.Println(renderTable(headers, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
