package translator

import (
	"context"
	"strings"
	"time"

	"github.com/valpere/xcstran/internal/logger"
	"github.com/valpere/xcstran/internal/postprocess"
)

// Memory is a persistent translation memory keyed by source text, language
// pair and entry context.
type Memory interface {
	Lookup(ctx context.Context, text, sourceLang, targetLang, entryContext string) (string, bool, error)
	Remember(ctx context.Context, text, sourceLang, targetLang, entryContext, translated, service string) error
}

// CachedService consults a Memory before delegating to the wrapped service
// and records successful translations afterwards. Memory errors are logged
// and never fail a translation.
//
// Remembered values carry no surrounding whitespace; a hit is padded with
// the whitespace of the requesting text.
type CachedService struct {
	next    TranslationService
	memory  Memory
	refresh bool
	log     logger.Logger
}

// NewCachedService wraps next with memory. With refresh set every request
// goes to next and the memory is only written, which is what a forced
// re-translation needs.
func NewCachedService(next TranslationService, memory Memory, refresh bool, log logger.Logger) *CachedService {
	return &CachedService{next: next, memory: memory, refresh: refresh, log: log}
}

func (s *CachedService) Name() string {
	return s.next.Name()
}

func (s *CachedService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	if !s.refresh {
		if hit := s.lookup(ctx, req); hit != nil {
			return hit, nil
		}
	}

	result, err := s.next.Translate(ctx, cfg, req)
	if err != nil {
		return result, err
	}

	translated := strings.TrimSpace(result.TranslatedText)
	if translated == "" {
		return result, nil
	}
	if err := s.memory.Remember(ctx, req.Text, req.SourceLang, req.TargetLang, req.Context, translated, result.ServiceName); err != nil {
		s.log.Warn().Err(err).Str("target", req.TargetLang).Msg("failed to save translation memory")
	}
	return result, nil
}

func (s *CachedService) lookup(ctx context.Context, req TranslateRequest) *ServiceResult {
	start := time.Now()
	text, found, err := s.memory.Lookup(ctx, req.Text, req.SourceLang, req.TargetLang, req.Context)
	if err != nil {
		s.log.Warn().Err(err).Str("target", req.TargetLang).Msg("translation memory lookup failed")
		return nil
	}
	text = strings.TrimSpace(text)
	if !found || text == "" {
		return nil
	}
	return &ServiceResult{
		ServiceName:    s.next.Name(),
		TranslatedText: postprocess.Pad(req.Text, text),
		Cached:         true,
		Latency:        time.Since(start),
	}
}

func (s *CachedService) IsAvailable(ctx context.Context) error {
	return s.next.IsAvailable(ctx)
}
