package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything one import run needs. The Actual and Wallos
// settings come from the environment; the rest is filled in from CLI flags.
type Config struct {
	// Actual side.
	DataDir   string
	BudgetID  string
	ServerURL string
	Password  string

	// Wallos side, required only in remote mode.
	WallosURL    string
	WallosAPIKey string

	// Flag-driven.
	DefaultAccount string
	MappingFile    string
	Debug          bool
}

var envKeys = []string{
	"actual_data_dir",
	"actual_budget_id",
	"actual_server_url",
	"actual_password",
	"wallos_url",
	"wallos_api_key",
}

// Load reads the environment into a Config. Callers load .env beforehand if
// they want dotenv support.
func Load() *Config {
	v := viper.New()
	v.SetDefault("actual_data_dir", "./actual-data")
	for _, key := range envKeys {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	return &Config{
		DataDir:      v.GetString("actual_data_dir"),
		BudgetID:     v.GetString("actual_budget_id"),
		ServerURL:    v.GetString("actual_server_url"),
		Password:     v.GetString("actual_password"),
		WallosURL:    strings.TrimSuffix(v.GetString("wallos_url"), "/"),
		WallosAPIKey: v.GetString("wallos_api_key"),
	}
}

// ValidateRemote checks the env vars that only remote mode needs.
func (c *Config) ValidateRemote() error {
	if c.WallosURL == "" || c.WallosAPIKey == "" {
		return fmt.Errorf("remote mode requires WALLOS_URL and WALLOS_API_KEY to be set")
	}
	return nil
}

// SyncConfigured reports whether a sync endpoint was supplied.
func (c *Config) SyncConfigured() bool {
	return c.ServerURL != "" && c.Password != ""
}
