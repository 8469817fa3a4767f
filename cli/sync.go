package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconciliation commands",
	Long:  `Reconcile issue records with the series' published totals.`,
}

var syncMissingCmd = &cobra.Command{
	Use:   "missing [series-id]",
	Short: "Create missing issue records",
	Long: `Create one unread issue record for every number in 1..total_issues that has
no record yet. Individual failures are counted and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		fmt.Println("Syncing missing issues...")
		result, err := runner.SyncMissing(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Sync failed: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Created %d issue(s), %d failed", result.Created, result.Failed))
		return nil
	},
}

var syncRecalculateCmd = &cobra.Command{
	Use:   "recalculate [series-id]",
	Short: "Rebuild all issue records from the series totals",
	Long: `Delete every issue record of the series and recreate 1..total_issues, marking
the first read_issues as read. This is a destructive repair tool for when the
counters and the issue records have drifted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}

		if !confirm("This deletes ALL issue records of the series and recreates them. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		fmt.Println("Recalculating from totals...")
		result, err := runner.RecalculateFromTotals(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Recalculate failed: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Recreated %d issue(s), %d failed", result.Created, result.Failed))
		return nil
	},
}

var syncAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Recalculate every series on the server",
	Long:  `Ask the backend to recompute stored counters from issue records for all series.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Recalculating all series...")
		result, err := client.RecalculateAll(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Recalculate failed: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("%d of %d series recalculated, %d error(s)",
			result.Recalculated, result.Total, result.Errors))
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncMissingCmd)
	syncCmd.AddCommand(syncRecalculateCmd)
	syncCmd.AddCommand(syncAllCmd)
}
