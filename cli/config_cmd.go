package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rrezende/hq-manager-cli/cli/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify HQ Manager CLI configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: hqman init")
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("----------------------")

		v := reflect.ValueOf(*cfg)
		t := v.Type()

		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			typeField := t.Field(i)

			fmt.Printf("[%s]\n", typeField.Name)
			if field.Kind() == reflect.Struct {
				for j := 0; j < field.NumField(); j++ {
					subField := field.Field(j)
					subTypeField := field.Type().Field(j)
					tag := subTypeField.Tag.Get("yaml")
					if tag == "" {
						tag = subTypeField.Name
					}
					fmt.Printf("  %s: %v\n", tag, subField.Interface())
				}
			}
			fmt.Println()
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. Key should be in format 'section.key' (e.g., server.url).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		parts := strings.Split(key, ".")
		if len(parts) != 2 {
			return fmt.Errorf("invalid key format. Use 'section.key'")
		}

		section := strings.ToLower(parts[0])
		k := strings.ToLower(parts[1])

		updated := false

		switch section {
		case "server":
			if k == "url" {
				cfg.Server.URL = value
				updated = true
			}
		case "export":
			if k == "dir" {
				cfg.Export.Dir = value
				updated = true
			}
		case "browse":
			if k == "filter" {
				cfg.Browse.Filter = value
				updated = true
			}
		}

		if !updated {
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printSuccess(fmt.Sprintf("Updated %s to %s", key, value))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
