package main

import (
	"fmt"

	"github.com/diagnosis/car-rental/migrations"
	"github.com/diagnosis/car-rental/pkg/config"
	"github.com/diagnosis/car-rental/pkg/database"
	"github.com/diagnosis/car-rental/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ctx := cmd.Context()

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		ms, err := migrations.All()
		if err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}
		for _, m := range ms {
			if _, err := pool.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("apply %s: %w", m.Name, err)
			}
			logger.Info("Migration applied", "name", m.Name)
		}
		return nil
	},
}
