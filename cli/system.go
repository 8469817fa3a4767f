package cli

import (
	"fmt"
	"runtime"

	"github.com/rrezende/hq-manager-cli/cli/config"
	"github.com/spf13/cobra"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "System information",
	Long:  `Display system information and diagnostics.`,
}

var systemInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system info",
	Long:  `Display system information including OS, architecture, and backend status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("System Information:")
		fmt.Println("-------------------")
		fmt.Printf("OS: %s\n", runtime.GOOS)
		fmt.Printf("Architecture: %s\n", runtime.GOARCH)
		fmt.Printf("Go Version: %s\n", runtime.Version())

		serverURL, err := config.GetServerURL()
		if err != nil {
			fmt.Println("\nConfiguration: Not initialized")
			fmt.Println("Run: hqman init")
			return nil
		}

		fmt.Println("\nConfiguration:")
		fmt.Printf("  Server URL: %s\n", serverURL)

		fmt.Println("\nServer Connectivity:")
		client, err := newClient()
		if err != nil {
			fmt.Println("  Status: Unknown (Config error)")
			return nil
		}
		if err := client.Health(cmd.Context()); err != nil {
			fmt.Printf("  Status: ✗ Unreachable (%s)\n", err.Error())
		} else {
			fmt.Println("  Status: ✓ Online")
		}

		return nil
	},
}

func init() {
	systemCmd.AddCommand(systemInfoCmd)
}
