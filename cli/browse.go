package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rrezende/hq-manager-cli/cli/config"
	"github.com/rrezende/hq-manager-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the collection interactively",
	Long:  `Open the full-screen collection browser. Navigate series, toggle issues, sync and undo without leaving the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		stack, err := config.LoadUndoStack()
		if err != nil {
			printError("Failed to load undo state")
			return err
		}

		filter := ""
		if cfg, err := config.Load(); err == nil {
			filter = cfg.Browse.Filter
		}

		stack, err = tui.Run(client, stack, filter)
		if saveErr := config.SaveUndoStack(stack); saveErr != nil {
			printError("Failed to save undo state")
		}
		if err != nil {
			printError(fmt.Sprintf("Browser exited with error: %s", err.Error()))
			return err
		}
		return nil
	},
}
