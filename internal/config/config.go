package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the main struct that holds all configuration for the application.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Notifiers NotifiersConfig `mapstructure:"notifiers"`
	KeepAlive KeepAliveConfig `mapstructure:"keepalive"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds HTTP server-specific settings.
type HTTPConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// AuthConfig holds the relay authorization settings.
type AuthConfig struct {
	// APIKey is compared against the caller-supplied api_key field.
	// The default value "flash" is INSECURE and only kept for backward
	// compatibility; override it via AUTH_API_KEY in any real deployment.
	APIKey string `mapstructure:"api_key"`
}

// NotifiersConfig holds configurations for the outbound notification channel.
type NotifiersConfig struct {
	// Mode can be "development" or "production".
	// In "development" mode the Telegram notifier is replaced by the LogNotifier.
	Mode     string         `mapstructure:"mode"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig holds settings for the Telegram delivery client.
type TelegramConfig struct {
	APIBaseURL string        `mapstructure:"api_base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// KeepAliveConfig holds settings for the self-ping scheduler that keeps the
// hosting platform from idling the process.
type KeepAliveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	BaseURL  string        `mapstructure:"base_url"`
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultAPIKey is the insecure fallback authorization secret.
const DefaultAPIKey = "flash"

// NewConfig parses the YAML file and environment variables to return a configuration struct.
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile("configs/config.yaml")

	v.SetDefault("logger.level", "info")
	v.SetDefault("http.port", ":3000")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("auth.api_key", DefaultAPIKey)
	v.SetDefault("notifiers.mode", "production")
	v.SetDefault("notifiers.telegram.api_base_url", "https://api.telegram.org")
	v.SetDefault("notifiers.telegram.timeout", "10s")
	v.SetDefault("keepalive.enabled", false)
	v.SetDefault("keepalive.base_url", "http://localhost:3000")
	v.SetDefault("keepalive.interval", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; environment variables and defaults are
	// enough to run the service.
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
