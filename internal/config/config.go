package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds every tunable the app reads at startup. Values come from
// an optional config.yaml under the XDG config dir, overridden by
// MATHSFUN_* environment variables.
type Config struct {
	DBPath   string       `yaml:"db_path"`
	LogLevel string       `yaml:"log_level"`
	Google   GoogleConfig `yaml:"google"`
	Chatter  ChatterConfig `yaml:"chatter"`
}

// GoogleConfig configures the optional Google sign-in flow.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CallbackPort int    `yaml:"callback_port"`
}

// ChatterConfig configures the optional post-quiz commentary model.
// The endpoint speaks the OpenAI chat completions API.
type ChatterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Enabled reports whether commentary can be requested at all.
func (c ChatterConfig) Enabled() bool {
	return c.APIKey != ""
}

const (
	defaultCallbackPort = 8765
	defaultChatterModel = "grok-3-mini"
	defaultChatterURL   = "https://api.x.ai/v1"
)

// Dir returns the app's config directory.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mathsfun"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".config", "mathsfun"), nil
}

// Load reads config.yaml if present and applies env overrides. A missing
// config file is not an error; everything has a default or is optional.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("MATHSFUN")
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("google.callback_port", defaultCallbackPort)
	v.SetDefault("chatter.model", defaultChatterModel)
	v.SetDefault("chatter.base_url", defaultChatterURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		DBPath:   v.GetString("db_path"),
		LogLevel: v.GetString("log_level"),
		Google: GoogleConfig{
			ClientID:     v.GetString("google.client_id"),
			ClientSecret: v.GetString("google.client_secret"),
			CallbackPort: v.GetInt("google.callback_port"),
		},
		Chatter: ChatterConfig{
			APIKey:  v.GetString("chatter.api_key"),
			Model:   v.GetString("chatter.model"),
			BaseURL: v.GetString("chatter.base_url"),
		},
	}

	// Bare env names win over everything, matching how people actually
	// set API keys.
	if k := os.Getenv("MATHSFUN_CHATTER_API_KEY"); k != "" {
		cfg.Chatter.APIKey = k
	} else if k := os.Getenv("XAI_API_KEY"); k != "" {
		cfg.Chatter.APIKey = k
	}
	if id := os.Getenv("MATHSFUN_GOOGLE_CLIENT_ID"); id != "" {
		cfg.Google.ClientID = id
	}
	if secret := os.Getenv("MATHSFUN_GOOGLE_CLIENT_SECRET"); secret != "" {
		cfg.Google.ClientSecret = secret
	}
	if p := os.Getenv("MATHSFUN_DB"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}
