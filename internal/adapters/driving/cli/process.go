package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orsaqc/internal/adapters/driven/excel"
	"github.com/custodia-labs/orsaqc/internal/adapters/driven/source/dirsource"
	"github.com/custodia-labs/orsaqc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/orsaqc/internal/checks"
	"github.com/custodia-labs/orsaqc/internal/core/ports/driving"
	"github.com/custodia-labs/orsaqc/internal/core/services"
	"github.com/custodia-labs/orsaqc/internal/reporting"
)

var (
	flagForce      bool
	flagWorkers    int
	flagDryRun     bool
	flagReportPath string
)

var processCmd = &cobra.Command{
	Use:   "process [dir]",
	Short: "Process all documents in a directory",
	Long: `Scans a directory for Excel documents, runs every registered quality
check against unseen content and persists the results. Documents whose
exact byte content was already processed for the same institute are
skipped unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVarP(&flagForce, "force", "f", false,
		"reprocess documents even when their content is cached")
	processCmd.Flags().IntVar(&flagWorkers, "workers", 0,
		"concurrent document workers (default from config, minimum 1)")
	processCmd.Flags().BoolVar(&flagDryRun, "dry-run", false,
		"run checks without persisting results")
	processCmd.Flags().StringVar(&flagReportPath, "report", "",
		"write a JSON batch report to this path")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	proc, err := processorForRun(ctx)
	if err != nil {
		return err
	}

	dir := appConfig.DocumentDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no document directory given (argument or document_dir in config)")
	}

	source := dirsource.New(dir)
	refs, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	if len(refs) == 0 {
		cmd.Printf("No documents found in %s.\n", dir)
		return nil
	}

	workers := flagWorkers
	if workers < 1 {
		workers = appConfig.Workers
	}

	summary := proc.ProcessBatch(ctx, refs, driving.BatchOptions{
		Force:   flagForce,
		Workers: workers,
	})

	reporting.WriteBanner(cmd.OutOrStdout(), summary)

	if flagReportPath != "" {
		if err := reporting.WriteJSON(flagReportPath, summary); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		cmd.Printf("Report written to %s.\n", flagReportPath)
	}

	return nil
}

// processorForRun returns the configured processor, or an isolated
// in-memory one for --dry-run so nothing touches the database.
func processorForRun(ctx context.Context) (driving.Processor, error) {
	if flagDryRun {
		if err := ensureConfig(); err != nil {
			return nil, err
		}
		return services.NewDocumentProcessor(ctx, excel.NewReader(), memory.NewStore(), checks.DefaultRegistry())
	}
	if err := ensureServices(ctx); err != nil {
		return nil, err
	}
	return processor, nil
}
