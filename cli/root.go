package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rrezende/hq-manager-cli/cli/config"
	"github.com/rrezende/hq-manager-cli/internal/api"
	"github.com/rrezende/hq-manager-cli/internal/ops"
)

var rootCmd = &cobra.Command{
	Use:     "hqman",
	Short:   "HQ Manager CLI",
	Long:    `Track your comic book collection: series, issues, reading progress.`,
	Version: "1.0.0",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create the ~/.hqman directory with a default configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			printError("Failed to initialize configuration")
			return err
		}
		configPath, _ := config.GetConfigPath()
		printSuccess("Configuration initialized")
		fmt.Printf("Config file: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  hqman config set server.url <backend-url>")
		fmt.Println("  hqman series list")
		return nil
	},
}

func printSuccess(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	fmt.Printf("✗ %s\n", msg)
}

// newClient builds the API client from the resolved server URL.
func newClient() (*api.Client, error) {
	serverURL, err := config.GetServerURL()
	if err != nil {
		printError("Configuration not initialized")
		fmt.Println("Run: hqman init")
		return nil, err
	}
	return api.NewClient(serverURL), nil
}

func newRunner() (*ops.Runner, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return ops.NewRunner(client), nil
}

// confirm prompts y/N on stdin for destructive operations.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(updateCmd)
}
