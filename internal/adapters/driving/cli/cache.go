package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and invalidate the content cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status <institute> <file>",
	Short: "Show whether a document's content is already cached",
	Args:  cobra.ExactArgs(2),
	RunE:  runCacheStatus,
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate [institute]",
	Short: "Drop cached version state for one institute, or all",
	Long: `Drops the in-memory version cache so content is re-examined on the next
run. Persisted results are untouched; the cache rebuilds from them at
startup, so this only matters for long-lived sessions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCacheInvalidate,
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	instituteID, path := args[0], args[1]
	status, err := processor.CacheStatus(ctx, instituteID, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}

	cmd.Printf("Fingerprint: %s\n", status.Fingerprint)
	if status.Cached {
		cmd.Printf("Cached:      yes (version %d)\n", status.Version)
	} else {
		cmd.Println("Cached:      no")
	}
	return nil
}

func runCacheInvalidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	instituteID := ""
	if len(args) > 0 {
		instituteID = args[0]
	}
	processor.InvalidateCache(instituteID)

	if instituteID == "" {
		cmd.Println("Invalidated cache for all institutes.")
	} else {
		cmd.Printf("Invalidated cache for institute %s.\n", instituteID)
	}
	return nil
}
