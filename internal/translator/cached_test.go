package translator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/valpere/xcstran/internal/logger"
)

type stubService struct {
	calls atomic.Int32
	text  string
	err   error
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return &ServiceResult{ServiceName: "stub", Error: s.err.Error()}, s.err
	}
	return &ServiceResult{ServiceName: "stub", TranslatedText: s.text}, nil
}

func (s *stubService) IsAvailable(ctx context.Context) error { return nil }

type mapMemory struct {
	mu        sync.Mutex
	entries   map[string]string
	lookupErr error
}

func newMapMemory() *mapMemory {
	return &mapMemory{entries: make(map[string]string)}
}

func memKey(text, src, tgt, entryContext string) string {
	return strings.TrimSpace(text) + "|" + src + "|" + tgt + "|" + entryContext
}

func (m *mapMemory) Lookup(ctx context.Context, text, src, tgt, entryContext string) (string, bool, error) {
	if m.lookupErr != nil {
		return "", false, m.lookupErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[memKey(text, src, tgt, entryContext)]
	return v, ok, nil
}

func (m *mapMemory) Remember(ctx context.Context, text, src, tgt, entryContext, translated, service string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[memKey(text, src, tgt, entryContext)] = translated
	return nil
}

func TestCachedService_MissThenHit(t *testing.T) {
	next := &stubService{text: "Bonjour"}
	mem := newMapMemory()
	svc := NewCachedService(next, mem, false, logger.Nop())

	req := TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "fr"}

	first, err := svc.Translate(context.Background(), ServiceConfig{}, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached || first.TranslatedText != "Bonjour" {
		t.Errorf("unexpected first result %+v", first)
	}

	second, err := svc.Translate(context.Background(), ServiceConfig{}, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached || second.TranslatedText != "Bonjour" {
		t.Errorf("unexpected second result %+v", second)
	}
	if next.calls.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", next.calls.Load())
	}

	// A different context is a different memory entry.
	req.Context = "Button title"
	if _, err := svc.Translate(context.Background(), ServiceConfig{}, req); err != nil {
		t.Fatal(err)
	}
	if next.calls.Load() != 2 {
		t.Errorf("expected 2 provider calls, got %d", next.calls.Load())
	}
}

func TestCachedService_FailureNotRemembered(t *testing.T) {
	next := &stubService{err: errors.New("boom")}
	mem := newMapMemory()
	svc := NewCachedService(next, mem, false, logger.Nop())

	if _, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "fr"}); err == nil {
		t.Fatal("expected error")
	}
	if len(mem.entries) != 0 {
		t.Errorf("expected no memory entries, got %v", mem.entries)
	}
}

func TestCachedService_LookupErrorFallsThrough(t *testing.T) {
	next := &stubService{text: "Bonjour"}
	mem := newMapMemory()
	mem.lookupErr = errors.New("db locked")
	svc := NewCachedService(next, mem, false, logger.Nop())

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Bonjour" || next.calls.Load() != 1 {
		t.Errorf("expected provider fallback, got %+v", result)
	}
	if svc.Name() != "stub" {
		t.Errorf("expected wrapped name, got %q", svc.Name())
	}
}

func TestCachedService_RefreshSkipsLookup(t *testing.T) {
	next := &stubService{text: "Salut"}
	mem := newMapMemory()
	mem.entries[memKey("Hello", "en", "fr", "")] = "Bonjour"
	svc := NewCachedService(next, mem, true, logger.Nop())

	result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{Text: "Hello", SourceLang: "en", TargetLang: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached || result.TranslatedText != "Salut" {
		t.Errorf("expected a fresh translation, got %+v", result)
	}
	if next.calls.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", next.calls.Load())
	}
	if got := mem.entries[memKey("Hello", "en", "fr", "")]; got != "Salut" {
		t.Errorf("expected memory to be updated, got %q", got)
	}
}

func TestCachedService_PaddingFollowsRequest(t *testing.T) {
	next := &stubService{text: "Nom : "}
	mem := newMapMemory()
	svc := NewCachedService(next, mem, false, logger.Nop())

	if _, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{Text: "Name: ", SourceLang: "en", TargetLang: "fr"}); err != nil {
		t.Fatal(err)
	}
	if got := mem.entries[memKey("Name:", "en", "fr", "")]; got != "Nom :" {
		t.Errorf("expected trimmed memory value, got %q", got)
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "no padding", text: "Name:", want: "Nom :"},
		{name: "trailing space", text: "Name: ", want: "Nom : "},
		{name: "leading space", text: "  Name:", want: "  Nom :"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Translate(context.Background(), ServiceConfig{}, TranslateRequest{Text: tt.text, SourceLang: "en", TargetLang: "fr"})
			if err != nil {
				t.Fatal(err)
			}
			if !result.Cached || result.TranslatedText != tt.want {
				t.Errorf("got %+v, want cached %q", result, tt.want)
			}
		})
	}
	if next.calls.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", next.calls.Load())
	}
}
