package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/valpere/xcstran/internal/orchestrator"
	"github.com/valpere/xcstran/internal/translator"
)

// isolate keeps the user's real config and environment out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for key := range defaults {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
		os.Unsetenv(EnvPrefix + "_" + strings.ToUpper(key))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(NewViper(), "", filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider != ProviderChat {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Concurrency != orchestrator.DefaultConcurrency {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.DB != DefaultDBPath || cfg.LogFormat != "console" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("unexpected config file %q", cfg.ConfigFile)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "custom.yaml"), `
input: Localizable.xcstrings
languages: [fr, de]
provider: ollama
concurrency: 8
timeout: 45s
no_backup: true
`)

	cfg, err := Load(NewViper(), path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Input != "Localizable.xcstrings" || cfg.Provider != ProviderOllama {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"fr", "de"}) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.Concurrency != 8 || cfg.Timeout != 45*time.Second || !cfg.NoBackup {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}

func TestLoad_SearchesHomeConfig(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, ".config", ConfigName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(cfgDir, "xcstran.toml"), "model = \"gpt-4.1-mini\"\n")

	cfg, err := Load(NewViper(), "", filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q", cfg.Model)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(NewViper(), filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "missing.env"))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "xcstran.yaml"), `
model: from-file
host: http://file.example
concurrency: 3
languages: fr
`)
	envFile := writeFile(t, filepath.Join(dir, ".env"), "XCSTRAN_MODEL=from-dotenv\nXCSTRAN_HOST=http://dotenv.example\nXCSTRAN_API_KEY=dotenv-key\n")
	t.Cleanup(func() {
		os.Unsetenv("XCSTRAN_MODEL")
		os.Unsetenv("XCSTRAN_HOST")
		os.Unsetenv("XCSTRAN_API_KEY")
	})
	t.Setenv("XCSTRAN_HOST", "http://env.example")
	t.Setenv("XCSTRAN_LANGUAGES", "fr,de, ja")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("concurrency", 5, "")
	fs.String("api-key", "", "")
	if err := fs.Parse([]string{"--concurrency", "12"}); err != nil {
		t.Fatal(err)
	}

	v := NewViper()
	if err := BindFlags(v, fs); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(v, path, envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{name: "flag beats file", got: cfg.Concurrency, want: 12},
		{name: "env beats dotenv", got: cfg.Host, want: "http://env.example"},
		{name: "dotenv beats file", got: cfg.Model, want: "from-dotenv"},
		{name: "dotenv beats unset flag default", got: cfg.APIKey, want: "dotenv-key"},
		{name: "env list is split", got: cfg.Languages, want: []string{"fr", "de", "ja"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Input:     "Localizable.xcstrings",
			Languages: []string{"fr", "de", "fr"},
			Provider:  "chat",
			APIKey:    "key",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing input", mutate: func(c *Config) { c.Input = " " }, wantErr: true},
		{name: "no languages", mutate: func(c *Config) { c.Languages = nil }, wantErr: true},
		{name: "invalid language", mutate: func(c *Config) { c.Languages = []string{"fr", "not a language"} }, wantErr: true},
		{name: "chat without key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: true},
		{name: "ollama without key", mutate: func(c *Config) { c.Provider = "Ollama"; c.APIKey = "" }},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "google" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("expected ErrConfiguration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_Defaults(t *testing.T) {
	c := Config{Input: "a.xcstrings", Languages: []string{"fr", "de", "FR", "pt_BR"}, Provider: "chat", APIKey: "k", Concurrency: 99}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Model != translator.DefaultChatModel {
		t.Errorf("Model = %q", c.Model)
	}
	if c.Concurrency != orchestrator.MaxConcurrency {
		t.Errorf("Concurrency = %d, want clamp to %d", c.Concurrency, orchestrator.MaxConcurrency)
	}
	if c.Timeout != orchestrator.DefaultTimeout || c.DB != DefaultDBPath {
		t.Errorf("unexpected defaults %+v", c)
	}
	if !reflect.DeepEqual(c.Languages, []string{"fr", "de", "pt-BR"}) {
		t.Errorf("Languages = %v", c.Languages)
	}

	o := Config{Input: "a.xcstrings", Languages: []string{"ja"}, Provider: "ollama"}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.Model != translator.DefaultOllamaModel {
		t.Errorf("Model = %q", o.Model)
	}
}

func TestConfig_ServiceConfig(t *testing.T) {
	c := Config{APIKey: "k", Model: "m", Host: "http://h", Timeout: time.Second}
	sc := c.ServiceConfig()
	want := translator.ServiceConfig{APIKey: "k", Model: "m", BaseURL: "http://h", Timeout: time.Second}
	if sc != want {
		t.Errorf("ServiceConfig() = %+v, want %+v", sc, want)
	}
}
