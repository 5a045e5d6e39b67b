package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds nutrition API configuration
type ServerConfig struct {
	URL     string `mapstructure:"url"`      // API base URL
	Token   string `mapstructure:"token"`    // Bearer token
	OwnerID string `mapstructure:"owner_id"` // Account whose library is browsed
}

// PreferencesConfig holds user preferences
type PreferencesConfig struct {
	DefaultSort  string `mapstructure:"default_sort"`  // "usage", "name", or "recency"
	ShowCalories bool   `mapstructure:"show_calories"` // Show calorie column in lists
	FetchLimit   int    `mapstructure:"fetch_limit"`   // Max records fetched per collection
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{},
		Preferences: PreferencesConfig{
			DefaultSort:  "usage",
			ShowCalories: true,
			FetchLimit:   500,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "larder", "larder.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "larder", "larder.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "larder")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "larder")
	}
}

// DefaultCachePath returns the default cache directory path for the current OS
func DefaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "larder", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "larder", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("LARDER")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.owner_id", cfg.Server.OwnerID)

	viper.Set("preferences.default_sort", cfg.Preferences.DefaultSort)
	viper.Set("preferences.show_calories", cfg.Preferences.ShowCalories)
	viper.Set("preferences.fetch_limit", cfg.Preferences.FetchLimit)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL, token, and owner are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != "" && c.Server.OwnerID != ""
}
