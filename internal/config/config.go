// Package config resolves xcstran settings.
//
// Values are layered, highest priority first: command-line flags,
// XCSTRAN_* environment variables, a .env file, a config file
// (xcstran.yaml, .toml or .json in the working directory or
// $HOME/.config/xcstran) and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valpere/xcstran/internal/langcode"
	"github.com/valpere/xcstran/internal/orchestrator"
	"github.com/valpere/xcstran/internal/translator"
)

// ErrConfiguration marks every invalid or missing setting.
var ErrConfiguration = errors.New("invalid configuration")

const (
	EnvPrefix  = "XCSTRAN"
	ConfigName = "xcstran"

	ProviderChat   = "chat"
	ProviderOllama = "ollama"

	DefaultDBPath = "./data/xcstran.db"
)

type Config struct {
	Input       string        `mapstructure:"input"`
	Languages   []string      `mapstructure:"languages"`
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Host        string        `mapstructure:"host"`
	Model       string        `mapstructure:"model"`
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Force       bool          `mapstructure:"force"`
	NoBackup    bool          `mapstructure:"no_backup"`
	DB          string        `mapstructure:"db"`
	NoCache     bool          `mapstructure:"no_cache"`
	Verbose     bool          `mapstructure:"verbose"`
	LogFormat   string        `mapstructure:"log_format"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

var defaults = map[string]interface{}{
	"input":       "",
	"languages":   []string{},
	"provider":    ProviderChat,
	"api_key":     "",
	"host":        "",
	"model":       "",
	"concurrency": orchestrator.DefaultConcurrency,
	"timeout":     orchestrator.DefaultTimeout,
	"force":       false,
	"no_backup":   false,
	"db":          DefaultDBPath,
	"no_cache":    false,
	"verbose":     false,
	"log_format":  "console",
}

// NewViper returns a viper instance with xcstran's defaults and environment
// binding.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag of fs that names a config key. Flag names use
// dashes where keys use underscores ("no-backup" → "no_backup").
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key := range defaults {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// Load reads the .env files (default ".env", missing files are ignored) and
// the config file, then decodes the merged settings. configFile overrides the
// config file search. The result is not validated.
func Load(v *viper.Viper, configFile string, envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config file: %w", ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Languages = splitList(cfg.Languages)
	return &cfg, nil
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Existing environment variables win over the file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: loading %s: %w", ErrConfiguration, f, err)
		}
	}
	return nil
}

// splitList flattens comma separated items ("fr,de" from env or a config
// string) and trims blanks.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the settings needed by the translate command and fills
// provider dependent defaults. Concurrency is clamped into range.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("%w: input file is required", ErrConfiguration)
	}

	if len(c.Languages) == 0 {
		return fmt.Errorf("%w: at least one target language is required", ErrConfiguration)
	}
	langs, err := langcode.Normalize(c.Languages)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	c.Languages = langs

	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case ProviderChat:
		if strings.TrimSpace(c.APIKey) == "" {
			return fmt.Errorf("%w: an API key is required for the %s provider (--api-key or %s_API_KEY)", ErrConfiguration, ProviderChat, EnvPrefix)
		}
		if c.Model == "" {
			c.Model = translator.DefaultChatModel
		}
	case ProviderOllama:
		if c.Model == "" {
			c.Model = translator.DefaultOllamaModel
		}
	default:
		return fmt.Errorf("%w: unknown provider %q (want %s or %s)", ErrConfiguration, c.Provider, ProviderChat, ProviderOllama)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrConfiguration)
	}
	if c.Timeout == 0 {
		c.Timeout = orchestrator.DefaultTimeout
	}
	c.Concurrency = orchestrator.ClampConcurrency(c.Concurrency)

	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrConfiguration, c.LogFormat)
	}

	if c.DB == "" {
		c.DB = DefaultDBPath
	}
	return nil
}

// ServiceConfig returns the provider settings passed with every request.
func (c *Config) ServiceConfig() translator.ServiceConfig {
	return translator.ServiceConfig{
		APIKey:  c.APIKey,
		Model:   c.Model,
		BaseURL: c.Host,
		Timeout: c.Timeout,
	}
}
