package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long:  `Display aggregate counts from the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		stats, err := client.Stats(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Failed to load stats: %s", err.Error()))
			return err
		}

		fmt.Println("Collection Statistics:")
		fmt.Println("----------------------")
		fmt.Printf("  Total series: %d\n", stats.Total)
		fmt.Printf("  Para ler:     %d\n", stats.ParaLer)
		fmt.Printf("  Lendo:        %d\n", stats.Lendo)
		fmt.Printf("  Concluídas:   %d\n", stats.Concluida)
		return nil
	},
}
