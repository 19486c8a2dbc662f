/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/xcstran/internal/config"
	"github.com/valpere/xcstran/internal/logger"
	"github.com/valpere/xcstran/internal/store"
	"github.com/valpere/xcstran/internal/translator"
)

// loadConfig resolves the settings for cmd from its flags, the environment,
// .env and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := config.BindFlags(v, cmd.InheritedFlags()); err != nil {
		return nil, err
	}
	return config.Load(v, cfgFile)
}

// newLogger builds the root logger; components take logger.Named children
// of it.
func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.LevelFor(cfg.Verbose),
		Format: cfg.LogFormat,
	})
}

// openStore opens the database named by the resolved config.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	db, err := store.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// buildService constructs the provider named by cfg.Provider, wrapped in the
// translation memory when memory is non-nil. Under --force the memory is
// written but not consulted. root must be the root logger.
func buildService(cfg *config.Config, memory translator.Memory, root logger.Logger) (translator.TranslationService, error) {
	var svc translator.TranslationService
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderChat:
		svc = translator.NewChatService(cfg.APIKey, cfg.Host, cfg.Model)
	case config.ProviderOllama:
		svc = translator.NewOllamaService(cfg.Host, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", config.ErrConfiguration, cfg.Provider)
	}

	if memory != nil {
		svc = translator.NewCachedService(svc, memory, cfg.Force, logger.Named(root, "memory"))
	}
	return svc, nil
}
