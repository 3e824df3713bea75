package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResultVersion int

var resultsCmd = &cobra.Command{
	Use:   "results <institute>",
	Short: "Show stored check results for an institute",
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultVersion, "version", 0,
		"only show results for this document version")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	instituteID := args[0]
	results, err := resultQuery.ResultsForInstitute(ctx, instituteID, flagResultVersion)
	if err != nil {
		return fmt.Errorf("querying results: %w", err)
	}
	if len(results) == 0 {
		cmd.Printf("No results stored for institute %s.\n", instituteID)
		return nil
	}

	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
		}
		cmd.Printf("v%-3d %-28s %s  %s\n", r.Version, r.CheckName, status, r.Description)
	}
	cmd.Printf("%d result(s).\n", len(results))
	return nil
}
