package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/valpere/xcstran/internal"
)

// Run is a journaled translate invocation.
type Run struct {
	internal.RunInfo
	Status     string
	FinishedAt *time.Time
	Languages  []internal.LanguageResult
}

// StartRun records a new run in the running state.
func (s *Store) StartRun(ctx context.Context, info internal.RunInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_file, source_lang, targets, provider, model, status, started_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID, info.InputFile, info.SourceLang, strings.Join(info.Targets, ","), info.Provider, info.Model, internal.RunStatusRunning, info.StartedAt)
	return err
}

// CompleteLanguage records that a language of the run has been checkpointed.
func (s *Store) CompleteLanguage(ctx context.Context, runID string, res internal.LanguageResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_languages (run_id, language, translated, copied, failed, skipped, unsupported, elapsed_ms, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, res.Language, res.Translated, res.Copied, res.Failed, res.Skipped, res.Unsupported, res.Elapsed.Milliseconds(), time.Now())
	return err
}

// FinishRun sets the final status of a run.
func (s *Store) FinishRun(ctx context.Context, runID, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now(), runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// GetRun returns a run together with its completed languages.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_file, source_lang, targets, COALESCE(provider, ''), COALESCE(model, ''), status, started_at, finished_at FROM runs WHERE id = ?`,
		runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT language, translated, copied, failed, skipped, unsupported, elapsed_ms FROM run_languages WHERE run_id = ? ORDER BY completed_at, language`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lr internal.LanguageResult
		var elapsedMs int64
		if err := rows.Scan(&lr.Language, &lr.Translated, &lr.Copied, &lr.Failed, &lr.Skipped, &lr.Unsupported, &elapsedMs); err != nil {
			return nil, err
		}
		lr.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		run.Languages = append(run.Languages, lr)
	}
	return run, rows.Err()
}

// ListRuns returns the most recent runs first, without their languages.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_file, source_lang, targets, COALESCE(provider, ''), COALESCE(model, ''), status, started_at, finished_at FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var targets string
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &run.InputFile, &run.SourceLang, &targets, &run.Provider, &run.Model, &run.Status, &run.StartedAt, &finished); err != nil {
		return nil, err
	}
	if targets != "" {
		run.Targets = strings.Split(targets, ",")
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
