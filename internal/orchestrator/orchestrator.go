// Package orchestrator fills the missing localizations of a catalog.
//
// Target languages are processed one after another. Within a language the
// sorted entry keys are split into batches of Concurrency tasks; each batch
// runs in parallel and is fully drained before the next one starts. After
// the last batch of a language the whole document is checkpointed, so an
// interrupted run loses at most the language in progress.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/xcstran/internal"
	"github.com/valpere/xcstran/internal/catalog"
	"github.com/valpere/xcstran/internal/langcode"
	"github.com/valpere/xcstran/internal/logger"
	"github.com/valpere/xcstran/internal/placeholder"
	"github.com/valpere/xcstran/internal/progress"
	"github.com/valpere/xcstran/internal/translator"
)

const (
	DefaultConcurrency = 5
	MaxConcurrency     = 20
	DefaultTimeout     = 30 * time.Second
)

// Persister writes a checkpoint of the whole document.
type Persister interface {
	Persist(doc *catalog.Document) error
}

// Recorder journals completed languages. Failures are logged only.
type Recorder interface {
	CompleteLanguage(ctx context.Context, runID string, res internal.LanguageResult) error
}

// GlossarySource supplies required term translations for a language pair.
type GlossarySource interface {
	GlossaryFor(ctx context.Context, sourceLang, targetLang string) (map[string]string, error)
}

type Config struct {
	Targets     []string
	Concurrency int
	Timeout     time.Duration
	Force       bool
	Service     translator.ServiceConfig
	// OnProgress, when set, is called after every finished task. It may be
	// called from several goroutines at once.
	OnProgress func(lang string, done, total, percent int)
}

// Summary describes a Run, including the languages completed before an
// early return.
type Summary struct {
	Languages   []internal.LanguageResult
	Checkpoints int
	Elapsed     time.Duration
}

// Totals sums the per-language counters.
func (s *Summary) Totals() internal.LanguageResult {
	var t internal.LanguageResult
	for _, l := range s.Languages {
		t.Translated += l.Translated
		t.Copied += l.Copied
		t.Failed += l.Failed
		t.Skipped += l.Skipped
		t.Unsupported += l.Unsupported
	}
	t.Elapsed = s.Elapsed
	return t
}

type Orchestrator struct {
	service   translator.TranslationService
	persister Persister
	config    Config
	log       logger.Logger

	recorder Recorder
	runID    string
	glossary GlossarySource
}

func New(service translator.TranslationService, persister Persister, config Config, log logger.Logger) *Orchestrator {
	config.Concurrency = ClampConcurrency(config.Concurrency)
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		service:   service,
		persister: persister,
		config:    config,
		log:       log,
	}
}

// WithJournal records every completed language under runID.
func (o *Orchestrator) WithJournal(runID string, rec Recorder) *Orchestrator {
	o.runID = runID
	o.recorder = rec
	return o
}

// WithGlossary adds the glossary terms that occur in an entry's source text
// to its provider request.
func (o *Orchestrator) WithGlossary(g GlossarySource) *Orchestrator {
	o.glossary = g
	return o
}

// ClampConcurrency maps n into [1, MaxConcurrency]; zero or less selects
// DefaultConcurrency.
func ClampConcurrency(n int) int {
	switch {
	case n <= 0:
		return DefaultConcurrency
	case n > MaxConcurrency:
		return MaxConcurrency
	default:
		return n
	}
}

// Run processes every target language of the config in order. It returns
// early on context cancellation (the language in progress is not
// checkpointed) and on checkpoint failure. Provider failures never end the
// run; they leave an error unit in the document.
func (o *Orchestrator) Run(ctx context.Context, doc *catalog.Document) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}
	defer func() { summary.Elapsed = time.Since(start) }()

	// Tasks only read the strings map, so nil groups are replaced up front.
	for key, g := range doc.Strings {
		if g == nil {
			doc.Strings[key] = &catalog.Group{}
		}
	}

	for _, lang := range o.config.Targets {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if langcode.Same(lang, doc.SourceLanguage) {
			o.log.Warn().Str("language", lang).Msg("target language equals the source language, skipping")
			continue
		}

		res, err := o.translateLanguage(ctx, doc, lang)
		if err != nil {
			o.log.Warn().Str("language", lang).Err(err).Msg("language interrupted, not checkpointed")
			return summary, err
		}

		if err := o.persister.Persist(doc); err != nil {
			return summary, fmt.Errorf("%w after %s: %w", ErrPersistence, lang, err)
		}
		summary.Checkpoints++
		summary.Languages = append(summary.Languages, res)

		o.log.Info().
			Str("language", lang).
			Int("translated", res.Translated).
			Int("copied", res.Copied).
			Int("failed", res.Failed).
			Int("skipped", res.Skipped).
			Int("unsupported", res.Unsupported).
			Dur("elapsed", res.Elapsed).
			Msg("checkpoint written")

		if o.recorder != nil {
			if err := o.recorder.CompleteLanguage(ctx, o.runID, res); err != nil {
				o.log.Warn().Err(err).Str("language", lang).Msg("failed to journal language")
			}
		}
	}

	return summary, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeTranslated
	outcomeCopied
	outcomeFailed
	outcomeUnsupported
)

func (o *Orchestrator) translateLanguage(ctx context.Context, doc *catalog.Document, lang string) (internal.LanguageResult, error) {
	start := time.Now()
	res := internal.LanguageResult{Language: lang}
	keys := doc.Keys()

	log := o.log.With().Str("language", lang).Logger()
	log.Info().
		Str("name", langcode.Name(lang)).
		Int("entries", len(keys)).
		Int("concurrency", o.config.Concurrency).
		Msg("translating language")

	var terms map[string]string
	if o.glossary != nil {
		var err error
		terms, err = o.glossary.GlossaryFor(ctx, doc.SourceLanguage, lang)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load glossary")
		}
	}

	tracker := progress.New(len(keys))
	width := o.config.Concurrency

	for begin := 0; begin < len(keys); begin += width {
		end := begin + width
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[begin:end]
		outcomes := make([]outcome, len(batch))

		var g errgroup.Group
		for i, key := range batch {
			g.Go(func() error {
				outcomes[i] = o.runTask(ctx, log, doc, lang, key, terms)
				done, pct := tracker.Increment()
				log.Debug().Int("done", done).Int("total", tracker.Total()).Int("percent", pct).Msg("progress")
				if o.config.OnProgress != nil {
					o.config.OnProgress(lang, done, tracker.Total(), pct)
				}
				return nil
			})
		}
		_ = g.Wait()

		for _, oc := range outcomes {
			switch oc {
			case outcomeTranslated:
				res.Translated++
			case outcomeCopied:
				res.Copied++
			case outcomeFailed:
				res.Failed++
			case outcomeUnsupported:
				res.Unsupported++
			default:
				res.Skipped++
			}
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// runTask handles one (entry, language) slot. It writes only the slot of
// its own group, so tasks of a batch never touch the same map.
func (o *Orchestrator) runTask(ctx context.Context, log logger.Logger, doc *catalog.Document, lang, key string, terms map[string]string) outcome {
	group := doc.Group(key)
	existing := group.Localization(lang)

	switch Decide(existing, o.config.Force, group.ShouldTranslate) {
	case WarnUnsupported:
		log.Warn().
			Str("key", key).
			Str("kind", existing.Kind().String()).
			Err(ErrUnsupportedFormat).
			Msg("entry left untouched")
		return outcomeUnsupported
	case Skip:
		return outcomeSkipped
	case CopyKeyVerbatim:
		group.SetLocalization(lang, catalog.NewStringLocalization(catalog.StateTranslated, key))
		return outcomeCopied
	}

	text := doc.SourceText(key)
	if !placeholder.IsTranslatable(text) {
		group.SetLocalization(lang, catalog.NewStringLocalization(catalog.StateTranslated, text))
		return outcomeCopied
	}

	req := translator.TranslateRequest{
		Text:       text,
		SourceLang: doc.SourceLanguage,
		TargetLang: lang,
		Context:    group.Comment,
		Glossary:   translator.MatchGlossary(terms, text),
	}

	result, err := RunWithTimeout(ctx, o.config.Timeout, func(callCtx context.Context) (*translator.ServiceResult, error) {
		return o.service.Translate(callCtx, o.config.Service, req)
	})
	if err == nil && (result == nil || result.TranslatedText == "") {
		err = errors.New("empty translation")
	}
	if err != nil {
		if !errors.Is(err, ErrTimeout) {
			err = fmt.Errorf("%w: %w", ErrProviderFailure, err)
		}
		if existing.HasTranslation() {
			log.Error().Err(err).Str("key", key).Msg("translation failed, keeping previous value")
			return outcomeFailed
		}
		log.Error().Err(err).Str("key", key).Msg("translation failed")
		group.SetLocalization(lang, catalog.NewStringLocalization(catalog.StateError, ""))
		return outcomeFailed
	}

	if missing := placeholder.Validate(text, result.TranslatedText); len(missing) > 0 {
		log.Warn().Str("key", key).Strs("missing", missing).Msg("translation dropped format specifiers")
	}

	group.SetLocalization(lang, catalog.NewStringLocalization(catalog.StateTranslated, result.TranslatedText))
	log.Debug().Str("key", key).Bool("cached", result.Cached).Dur("latency", result.Latency).Msg("translated")
	return outcomeTranslated
}
