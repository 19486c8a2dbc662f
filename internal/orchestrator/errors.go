package orchestrator

import "errors"

var (
	// ErrUnsupportedFormat marks entries whose existing localization is a
	// variation or substitution. They are reported and left untouched.
	ErrUnsupportedFormat = errors.New("unsupported localization format")
	// ErrProviderFailure wraps any failed provider call.
	ErrProviderFailure = errors.New("provider failure")
	// ErrTimeout is returned by RunWithTimeout when the deadline wins.
	ErrTimeout = errors.New("operation timed out")
	// ErrPersistence wraps checkpoint write failures. It ends the run.
	ErrPersistence = errors.New("checkpoint failed")
)
