package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		URL string `yaml:"url"`
	} `yaml:"server"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Browse struct {
		// Default filter tab when the TUI opens.
		Filter string `yaml:"filter"`
	} `yaml:"browse"`
}

const defaultServerURL = "http://localhost:8000"

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hqman"), nil
}

func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func Init() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{}
	config.Server.URL = defaultServerURL
	config.Export.Dir = "."
	config.Browse.Filter = "all"

	return Save(config)
}

// GetServerURL resolves the backend base URL. A HQMAN_SERVER_URL variable
// (environment or .env in the working directory) overrides the config file.
func GetServerURL() (string, error) {
	godotenv.Load()
	if url := os.Getenv("HQMAN_SERVER_URL"); url != "" {
		return url, nil
	}

	config, err := Load()
	if err != nil {
		return "", err
	}
	if config.Server.URL == "" {
		return defaultServerURL, nil
	}
	return config.Server.URL, nil
}
