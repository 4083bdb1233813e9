package config

import (
	"fmt"
	"strings"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"github.com/spf13/viper"
)

const (
	envPrefix           = "CHEERUP"
	defaultHTTPAddress  = "0.0.0.0:1989"
	defaultDatabasePath = "cheerup.db"
	defaultLogLevel     = "info"
	defaultAPIBaseURL   = "http://0.0.0.0:1989"
	defaultStorageRoot  = "_data"
)

// APIConfig captures runtime configuration for the REST API server.
type APIConfig struct {
	HTTPAddress   string
	DatabasePath  string
	LogLevel      string
	SigningSecret string
	DefaultLocale locales.Locale
}

// Credits carries the author metadata rendered on the credits page.
type Credits struct {
	Author      string
	ProfileName string
	ProfileURL  string
	RepoURL     string
}

// BotConfig captures runtime configuration shared by both Telegram bots.
type BotConfig struct {
	BotToken      string
	APIBaseURL    string
	StorageRoot   string
	LogLevel      string
	SigningSecret string
	DefaultLocale locales.Locale
	Credits       Credits
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("api.base_url", defaultAPIBaseURL)
	configViper.SetDefault("storage.root", defaultStorageRoot)
	configViper.SetDefault("locale.default", locales.Default.String())
}

// LoadAPI parses API server configuration from viper.
func LoadAPI(configViper *viper.Viper) (APIConfig, error) {
	cfg := APIConfig{
		HTTPAddress:   configViper.GetString("http.address"),
		DatabasePath:  configViper.GetString("database.path"),
		LogLevel:      configViper.GetString("log.level"),
		SigningSecret: configViper.GetString("auth.signing_secret"),
		DefaultLocale: locales.Parse(configViper.GetString("locale.default")),
	}

	if err := cfg.validate(); err != nil {
		return APIConfig{}, err
	}

	return cfg, nil
}

// LoadBot parses bot configuration from viper.
func LoadBot(configViper *viper.Viper) (BotConfig, error) {
	cfg := BotConfig{
		BotToken:      configViper.GetString("bot.token"),
		APIBaseURL:    strings.TrimRight(configViper.GetString("api.base_url"), "/"),
		StorageRoot:   configViper.GetString("storage.root"),
		LogLevel:      configViper.GetString("log.level"),
		SigningSecret: configViper.GetString("auth.signing_secret"),
		DefaultLocale: locales.Parse(configViper.GetString("locale.default")),
		Credits: Credits{
			Author:      configViper.GetString("credits.author"),
			ProfileName: configViper.GetString("credits.profile_name"),
			ProfileURL:  configViper.GetString("credits.profile_url"),
			RepoURL:     configViper.GetString("credits.repo_url"),
		},
	}

	if err := cfg.validate(); err != nil {
		return BotConfig{}, err
	}

	return cfg, nil
}

func (c APIConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return fmt.Errorf("http.address is required")
	}
	return nil
}

func (c BotConfig) validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("bot.token is required")
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if strings.TrimSpace(c.StorageRoot) == "" {
		return fmt.Errorf("storage.root is required")
	}
	return nil
}
