package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rrezende/hq-manager-cli/cli/config"
	"github.com/rrezende/hq-manager-cli/internal/ops"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last issue addition or total increase",
	Long:  `Revert the most recent undoable mutation. Failed reverts stay on the stack for retry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, err := config.LoadUndoStack()
		if err != nil {
			printError("Failed to load undo state")
			return err
		}
		if stack.Len() == 0 {
			fmt.Println("Nothing to undo.")
			return nil
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		rec, err := runner.Undo(cmd.Context(), stack)
		saveErr := config.SaveUndoStack(stack)
		if err != nil {
			printError(fmt.Sprintf("Undo failed: %s", err.Error()))
			fmt.Println("The record was kept; run 'hqman undo' again to retry.")
			return err
		}
		if saveErr != nil {
			printError("Undo applied but saving the stack failed")
			return saveErr
		}

		switch rec.Type {
		case ops.UndoAddIssue:
			printSuccess(fmt.Sprintf("Removed issue #%d from series %d", rec.IssueNumber, rec.SeriesID))
		case ops.UndoIncreaseTotal:
			printSuccess(fmt.Sprintf("Restored series %d total to %d", rec.SeriesID, rec.OldTotal))
		}
		return nil
	},
}

// pushUndoRecord appends to the persisted undo stack. Failures are reported
// but do not fail the command: the mutation itself already succeeded.
func pushUndoRecord(rec ops.UndoRecord) {
	stack, err := config.LoadUndoStack()
	if err != nil {
		printError("Mutation applied, but the undo stack could not be read")
		return
	}
	stack.Push(rec)
	if err := config.SaveUndoStack(stack); err != nil {
		printError("Mutation applied, but the undo stack could not be saved")
	}
}
