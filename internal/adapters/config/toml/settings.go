// Package toml loads process configuration and the account pool from
// a TOML config file, with environment overrides.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".rbclaim"
	envPrefix  = "RBCLAIM"
)

// Settings is everything the wiring layer needs to assemble the bot.
type Settings struct {
	APIBaseURL       string
	CountryCode      string
	Lang             string
	MaxLoginAttempts int
	RetryDelay       time.Duration
	Cooldown         time.Duration
	ListenAddr       string
	SentryDSN        string
	Environment      string
	AccountsPath     string
	SecretsRoot      string
}

// LoadSettings reads config.toml from the working directory or
// $HOME/.rbclaim, applying RBCLAIM_* environment overrides. A missing
// config file is fine as long as the base URL arrives via environment.
func LoadSettings(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(".")
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault("auth.country_code", "57")
	cfg.SetDefault("auth.lang", "en")
	cfg.SetDefault("auth.max_login_attempts", 1)
	cfg.SetDefault("auth.retry_delay", "100ms")
	cfg.SetDefault("auth.cooldown", "60s")
	cfg.SetDefault("server.listen", ":3000")
	cfg.SetDefault("sentry.environment", "development")
	cfg.SetDefault("accounts.path", filepath.Join(homeDir, configDir, "accounts.toml"))
	cfg.SetDefault("secrets.root", filepath.Join(homeDir, configDir, "secrets"))

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	settings := Settings{
		APIBaseURL:       cfg.GetString("api.base_url"),
		CountryCode:      cfg.GetString("auth.country_code"),
		Lang:             cfg.GetString("auth.lang"),
		MaxLoginAttempts: cfg.GetInt("auth.max_login_attempts"),
		RetryDelay:       cfg.GetDuration("auth.retry_delay"),
		Cooldown:         cfg.GetDuration("auth.cooldown"),
		ListenAddr:       cfg.GetString("server.listen"),
		SentryDSN:        cfg.GetString("sentry.dsn"),
		Environment:      cfg.GetString("sentry.environment"),
		AccountsPath:     cfg.GetString("accounts.path"),
		SecretsRoot:      cfg.GetString("secrets.root"),
	}

	if settings.APIBaseURL == "" {
		return Settings{}, errors.New("api.base_url is required (config file or RBCLAIM_API_BASE_URL)")
	}

	return settings, nil
}
