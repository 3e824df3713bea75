// Package cli wires the cobra command tree for the orsaqc binary.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/orsaqc/internal/adapters/driven/config/file"
	"github.com/custodia-labs/orsaqc/internal/adapters/driven/excel"
	"github.com/custodia-labs/orsaqc/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/orsaqc/internal/checks"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driven"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driving"
	"github.com/custodia-labs/orsaqc/internal/core/services"
	"github.com/custodia-labs/orsaqc/internal/logging"
)

var (
	flagVerbose   bool
	flagConfigDir string

	// Services are built lazily by ensureServices; tests inject their own.
	processor    driving.Processor
	resultQuery  driven.ResultQuery
	appConfig    configfile.Config
	configLoaded bool
	store        *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "orsaqc",
	Short: "Quality control for regulatory spreadsheet reports",
	Long: `orsaqc ingests spreadsheet documents, evaluates quality-control rules
against them and persists the results, skipping documents whose exact
content has already been processed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.Init(flagVerbose)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			_ = store.Close()
		}
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default ~/.orsaqc)")
}

// Execute runs the command tree.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// ensureConfig loads the TOML configuration on first use.
func ensureConfig() error {
	if configLoaded {
		return nil
	}

	configStore, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	appConfig, err = configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configLoaded = true
	return nil
}

// ensureServices builds the processor and stores on first use. Tests may
// preset the package-level services to skip real wiring.
func ensureServices(ctx context.Context) error {
	if processor != nil {
		return nil
	}
	if err := ensureConfig(); err != nil {
		return err
	}

	var err error
	store, err = sqlite.NewStore(appConfig.DataDir)
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	resultQuery = store

	processor, err = services.NewDocumentProcessor(ctx, excel.NewReader(), store, checks.DefaultRegistry())
	if err != nil {
		return fmt.Errorf("building processor: %w", err)
	}
	return nil
}
