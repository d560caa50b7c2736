package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"hopper/internal/ledger"
)

func newHistoryCommand(configFlag *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently processed work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLedger(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("Ledger is empty.")
				return nil
			}
			cmd.Println(renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}

func renderHistoryTable(entries []*ledger.Entry) string {
	headers := []string{"ID", "Recorded", "Run", "Order", "Minutes"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			entry.RecordedAt.Local().Format(time.DateTime),
			shortRunID(entry.RunID),
			entry.SourcePath,
			fmt.Sprintf("%.2f", entry.Minutes),
		})
	}
	return renderTable(headers, rows, aligns)
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
