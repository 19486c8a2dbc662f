package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/xcstran/internal/langcode"
)

// GlossaryTerm is a required translation of one source term for a language
// pair. Language codes are stored in canonical BCP-47 form.
type GlossaryTerm struct {
	ID         string
	SourceLang string
	TargetLang string
	Source     string
	Target     string
	CreatedAt  time.Time
}

// GlossaryFilter narrows ListGlossary. Empty fields match every language.
type GlossaryFilter struct {
	SourceLang string
	TargetLang string
}

// SetGlossaryTerm adds term, or changes the translation of the term already
// stored for the pair. The returned term carries the row ID, which is kept
// across updates.
func (s *Store) SetGlossaryTerm(ctx context.Context, term GlossaryTerm) (GlossaryTerm, error) {
	term.Source = strings.TrimSpace(term.Source)
	term.Target = strings.TrimSpace(term.Target)
	if term.Source == "" || term.Target == "" {
		return term, errors.New("glossary terms must not be empty")
	}

	var err error
	if term.SourceLang, err = langcode.Canonical(term.SourceLang); err != nil {
		return term, fmt.Errorf("source language: %w", err)
	}
	if term.TargetLang, err = langcode.Canonical(term.TargetLang); err != nil {
		return term, fmt.Errorf("target language: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO glossary (id, source_lang, target_lang, source_term, target_term)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_lang, target_lang, source_term) DO UPDATE SET target_term = excluded.target_term
		 RETURNING id`,
		uuid.NewString(), term.SourceLang, term.TargetLang, term.Source, term.Target).Scan(&term.ID)
	return term, err
}

// GlossaryFor returns the pair's terms as source → target. Codes are
// canonicalized first, so "pt_BR" and "pt-BR" name the same pair.
func (s *Store) GlossaryFor(ctx context.Context, sourceLang, targetLang string) (map[string]string, error) {
	entries, err := s.ListGlossary(ctx, GlossaryFilter{SourceLang: sourceLang, TargetLang: targetLang})
	if err != nil {
		return nil, err
	}
	terms := make(map[string]string, len(entries))
	for _, e := range entries {
		terms[e.Source] = e.Target
	}
	return terms, nil
}

// ListGlossary returns the stored terms ordered by pair and term.
func (s *Store) ListGlossary(ctx context.Context, filter GlossaryFilter) ([]GlossaryTerm, error) {
	var where []string
	var args []interface{}
	for _, f := range []struct{ column, code string }{
		{"source_lang", filter.SourceLang},
		{"target_lang", filter.TargetLang},
	} {
		if strings.TrimSpace(f.code) == "" {
			continue
		}
		where = append(where, f.column+" = ?")
		args = append(args, canonicalOrRaw(f.code))
	}

	query := `SELECT id, source_lang, target_lang, source_term, target_term, created_at FROM glossary`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY source_lang, target_lang, source_term COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []GlossaryTerm
	for rows.Next() {
		var t GlossaryTerm
		if err := rows.Scan(&t.ID, &t.SourceLang, &t.TargetLang, &t.Source, &t.Target, &t.CreatedAt); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// DeleteGlossaryTerm removes a term by ID and reports whether it existed.
func (s *Store) DeleteGlossaryTerm(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM glossary WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// canonicalOrRaw lets lookups with an unparsable code fall through to an
// exact comparison, which simply finds nothing.
func canonicalOrRaw(code string) string {
	if canon, err := langcode.Canonical(code); err == nil {
		return canon
	}
	return strings.TrimSpace(code)
}
