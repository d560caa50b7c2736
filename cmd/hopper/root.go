package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hopper/internal/config"
	"hopper/internal/ledger"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "hopper",
		Short:         "Inspect a hopper worker's ledger and configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newHistoryCommand(&configFlag))
	rootCmd.AddCommand(newStatsCommand(&configFlag))
	rootCmd.AddCommand(newClearCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}

func loadConfig(configFlag *string) (*config.Config, string, error) {
	path := ""
	if configFlag != nil {
		path = *configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, resolved, nil
}

func openLedger(configFlag *string) (*ledger.Store, error) {
	cfg, _, err := loadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	store, err := ledger.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return store, nil
}
