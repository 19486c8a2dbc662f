package internal

import "time"

// RunInfo identifies one invocation of the translate command.
type RunInfo struct {
	ID         string    `json:"id"`
	InputFile  string    `json:"input_file"`
	SourceLang string    `json:"source_lang"`
	Targets    []string  `json:"targets"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	StartedAt  time.Time `json:"started_at"`
}

// LanguageResult counts what happened to the entries of one target language.
type LanguageResult struct {
	Language    string        `json:"language"`
	Translated  int           `json:"translated"`
	Copied      int           `json:"copied"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Unsupported int           `json:"unsupported"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Attempted is the number of entries that produced a provider call or a
// verbatim copy.
func (r LanguageResult) Attempted() int {
	return r.Translated + r.Copied + r.Failed
}

// Run statuses recorded in the journal.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusCanceled  = "canceled"
)
