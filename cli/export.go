package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rrezende/hq-manager-cli/cli/config"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection spreadsheet",
	Long:  `Ask the backend to generate the Excel spreadsheet and save it locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		fmt.Println("Exporting...")
		data, err := client.ExportExcel(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Export failed: %s", err.Error()))
			fmt.Println("Try again in a moment.")
			return err
		}

		output := exportOutput
		if output == "" {
			dir := "."
			if cfg, err := config.Load(); err == nil && cfg.Export.Dir != "" {
				dir = cfg.Export.Dir
			}
			filename := fmt.Sprintf("Planilha_de_HQs_%s.xlsx", time.Now().Format("2006-01-02"))
			output = filepath.Join(dir, filename)
		}

		if err := os.WriteFile(output, data, 0644); err != nil {
			printError(fmt.Sprintf("Failed to write file: %s", err.Error()))
			return err
		}

		printSuccess(fmt.Sprintf("Spreadsheet exported to %s", output))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path (default: dated name in export dir)")
}
