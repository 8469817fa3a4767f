package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	issueRead bool
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Issue management commands",
	Long:  `Add, toggle and delete individual issues of a series.`,
}

var issuesAddCmd = &cobra.Command{
	Use:   "add [series-id] [issue-number]",
	Short: "Add an issue",
	Long:  `Register one issue of a series. The addition can be reverted with 'hqman undo'.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}
		issueNumber, err := strconv.Atoi(args[1])
		if err != nil || issueNumber < 1 {
			return fmt.Errorf("invalid issue number: %s", args[1])
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		issue, rec, err := runner.AddIssue(cmd.Context(), seriesID, issueNumber, issueRead)
		if err != nil {
			printError(fmt.Sprintf("Failed to add issue: %s", err.Error()))
			fmt.Println("Check whether the issue number already exists.")
			return err
		}

		pushUndoRecord(rec)
		printSuccess(fmt.Sprintf("Added issue #%d (id %d)", issue.IssueNumber, issue.ID))
		return nil
	},
}

var issuesToggleCmd = &cobra.Command{
	Use:   "toggle [series-id] [issue-id]",
	Short: "Toggle read status",
	Long:  `Flip the is_read flag of an issue.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}
		issueID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid issue id: %s", args[1])
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		issues, err := runner.Client.ListIssues(cmd.Context(), seriesID)
		if err != nil {
			printError(fmt.Sprintf("Failed to load issues: %s", err.Error()))
			return err
		}
		current := false
		found := false
		for _, issue := range issues {
			if issue.ID == issueID {
				current = issue.IsRead
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("issue %d not found in series %d", issueID, seriesID)
		}

		updated, err := runner.ToggleRead(cmd.Context(), seriesID, issueID, !current)
		if err != nil {
			printError(fmt.Sprintf("Failed to toggle issue: %s", err.Error()))
			return err
		}

		if updated.IsRead {
			printSuccess(fmt.Sprintf("Issue #%d marked as read", updated.IssueNumber))
		} else {
			printSuccess(fmt.Sprintf("Issue #%d marked as unread", updated.IssueNumber))
		}
		return nil
	},
}

var issuesDeleteCmd = &cobra.Command{
	Use:   "delete [series-id] [issue-id]",
	Short: "Delete an issue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seriesID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid series id: %s", args[0])
		}
		issueID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid issue id: %s", args[1])
		}

		if !confirm("Delete this issue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		if err := runner.DeleteIssue(cmd.Context(), seriesID, issueID); err != nil {
			printError(fmt.Sprintf("Failed to delete issue: %s", err.Error()))
			return err
		}

		printSuccess("Issue deleted")
		return nil
	},
}

func init() {
	issuesAddCmd.Flags().BoolVar(&issueRead, "read", false, "Mark the new issue as already read")

	issuesCmd.AddCommand(issuesAddCmd)
	issuesCmd.AddCommand(issuesToggleCmd)
	issuesCmd.AddCommand(issuesDeleteCmd)
}
