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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/valpere/xcstran/internal"
	"github.com/valpere/xcstran/internal/catalog"
	"github.com/valpere/xcstran/internal/checkpoint"
	"github.com/valpere/xcstran/internal/config"
	"github.com/valpere/xcstran/internal/langcode"
	"github.com/valpere/xcstran/internal/logger"
	"github.com/valpere/xcstran/internal/orchestrator"
	"github.com/valpere/xcstran/internal/store"
	"github.com/valpere/xcstran/internal/translator"
)

var (
	inputFile   string
	languages   []string
	provider    string
	apiKey      string
	host        string
	model       string
	concurrency int
	timeout     time.Duration
	force       bool
	noBackup    bool
	noCache     bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate the missing entries of a String Catalog",
	Long: `Translate every missing entry of a String Catalog into the given languages.

Entries that already have a translation are kept unless --force is set.
Plural/device variations and substitutions are reported and left untouched.
Entries marked "shouldTranslate": false get their key copied verbatim.

Providers:
  - chat     OpenAI-compatible /chat/completions API (requires API key;
             use --host for OpenRouter, Groq, LM Studio, ...)
  - ollama   Ollama server (self-hosted)

Example:
  xcstran translate -i Localizable.xcstrings -l fr,de,ja --api-key sk-...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		root := newLogger(cfg)
		log := logger.Named(root, "translate")
		if cfg.ConfigFile != "" {
			log.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
		}

		doc, err := catalog.ParseFile(cfg.Input)
		if err != nil {
			return err
		}
		if _, err := langcode.Parse(doc.SourceLanguage); err != nil {
			log.Warn().Str("source", doc.SourceLanguage).Err(err).Msg("catalog source language is not a valid language tag")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := store.New(cfg.DB)
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable: translation memory, glossary and journal disabled")
			db = nil
		} else {
			defer db.Close()
		}

		var memory translator.Memory
		if db != nil && !cfg.NoCache {
			memory = db
		}
		svc, err := buildService(cfg, memory, root)
		if err != nil {
			return err
		}
		if err := svc.IsAvailable(ctx); err != nil {
			log.Warn().Err(err).Str("provider", cfg.Provider).Msg("provider may be unavailable")
		}

		writer := checkpoint.NewWriter(cfg.Input, checkpoint.Options{
			SkipBackup: cfg.NoBackup,
			Logger:     logger.Named(root, "checkpoint"),
		})

		orch := orchestrator.New(svc, writer, orchestrator.Config{
			Targets:     cfg.Languages,
			Concurrency: cfg.Concurrency,
			Timeout:     cfg.Timeout,
			Force:       cfg.Force,
			Service:     cfg.ServiceConfig(),
		}, logger.Named(root, "orchestrator"))

		run := internal.RunInfo{
			ID:         uuid.NewString(),
			InputFile:  cfg.Input,
			SourceLang: doc.SourceLanguage,
			Targets:    cfg.Languages,
			Provider:   cfg.Provider,
			Model:      cfg.Model,
			StartedAt:  time.Now(),
		}
		if db != nil {
			if err := db.StartRun(ctx, run); err != nil {
				log.Warn().Err(err).Msg("failed to journal run")
			} else {
				orch.WithJournal(run.ID, db)
			}
			orch.WithGlossary(db)
		}

		log.Info().
			Str("run", run.ID).
			Str("input", cfg.Input).
			Str("source", doc.SourceLanguage).
			Strs("targets", cfg.Languages).
			Str("provider", cfg.Provider).
			Str("model", cfg.Model).
			Int("entries", len(doc.Strings)).
			Msg("starting translation")

		summary, runErr := orch.Run(ctx, doc)

		if db != nil {
			// The run context may already be cancelled.
			if err := db.FinishRun(context.Background(), run.ID, runStatus(runErr)); err != nil {
				log.Warn().Err(err).Msg("failed to finish run journal")
			}
		}

		printSummary(run.ID, summary, writer, !cfg.NoBackup)

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("interrupted: the catalog holds every language completed before the interrupt")
			}
			return runErr
		}
		log.Info().Dur("elapsed", summary.Elapsed).Int("checkpoints", summary.Checkpoints).Msg("translation finished")
		return nil
	},
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return internal.RunStatusCompleted
	case errors.Is(err, context.Canceled):
		return internal.RunStatusCanceled
	default:
		return internal.RunStatusFailed
	}
}

func printSummary(runID string, summary *orchestrator.Summary, writer *checkpoint.Writer, backup bool) {
	if summary == nil {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tTRANSLATED\tCOPIED\tFAILED\tSKIPPED\tUNSUPPORTED\tELAPSED")
	for _, l := range summary.Languages {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			l.Language, l.Translated, l.Copied, l.Failed, l.Skipped, l.Unsupported, l.Elapsed.Round(time.Millisecond))
	}
	t := summary.Totals()
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t%d\t%d\t%s\n",
		t.Translated, t.Copied, t.Failed, t.Skipped, t.Unsupported, summary.Elapsed.Round(time.Millisecond))
	w.Flush()
	fmt.Printf("Run %s: %d language(s) checkpointed, %s written %d time(s)\n",
		runID, summary.Checkpoints, writer.Path(), writer.Writes())
	if backup && writer.Writes() > 0 {
		fmt.Printf("Contents before the last write kept at %s\n", writer.BackupPath())
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "String Catalog (.xcstrings) to translate in place (required)")
	translateCmd.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Target language codes, comma-separated (required)")
	translateCmd.Flags().StringVar(&provider, "provider", config.ProviderChat, "Provider: chat or ollama")
	translateCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the chat provider")
	translateCmd.Flags().StringVar(&host, "host", "", "Provider base URL (default: https://api.openai.com/v1 or http://localhost:11434)")
	translateCmd.Flags().StringVar(&model, "model", "", "Model name (default: gpt-4o-mini or llama3.2)")
	translateCmd.Flags().IntVarP(&concurrency, "concurrency", "c", orchestrator.DefaultConcurrency, "Concurrent requests per batch (1-20)")
	translateCmd.Flags().DurationVar(&timeout, "timeout", orchestrator.DefaultTimeout, "Timeout per provider request")
	translateCmd.Flags().BoolVarP(&force, "force", "f", false, "Re-translate entries that already have a value")
	translateCmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not keep a .original backup of the previous file")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory")
}
