package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/claimtrack/internal/config"
	"github.com/mmynk/claimtrack/internal/storage"
	"github.com/mmynk/claimtrack/internal/storage/postgres"
	"github.com/mmynk/claimtrack/internal/storage/sqlite"
	"github.com/mmynk/claimtrack/pkg/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "claimtrack",
	Short: "Claim lifecycle and exposure service",
	Long:  "Tracks insurance claims through their lifecycle stages and derives exposure and depreciation drafts from the payment ledger.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		logging.Setup(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	SilenceUsage: true,
}

// openStore opens the configured storage backend. Both backends apply their
// schema on open.
func openStore(ctx context.Context) (storage.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == "postgres" {
		store, err := postgres.New(ctx, cfg.Store.DatabaseURL, &postgres.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := sqlite.New(cfg.Store.SQLitePath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
