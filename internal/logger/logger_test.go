package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"off", "disabled"},
		{"", "info"},
		{"   nonsense   ", "info"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Named(New(Options{Level: "info", Format: "json", Writer: &buf}), "test")

	log.Debug().Msg("hidden")
	log.Info().Str("lang", "fr").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if entry["component"] != "test" || entry["lang"] != "fr" || entry["message"] != "visible" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Writer: &buf, NoColor: true})

	log.Debug().Msg("checkpoint written")
	if !strings.Contains(buf.String(), "checkpoint written") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	root := New(Options{Format: "json", Writer: &buf})

	translateLog := Named(root, "translate")
	translateLog.Info().Msg("starting")
	checkpointLog := Named(root, "checkpoint")
	checkpointLog.Info().Msg("written")
	root.Info().Msg("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	for i, want := range []string{"translate", "checkpoint", ""} {
		if n := strings.Count(lines[i], `"component"`); (want == "" && n != 0) || (want != "" && n != 1) {
			t.Errorf("line %d: expected one component field, got %s", i, lines[i])
		}
		if want != "" && !strings.Contains(lines[i], `"component":"`+want+`"`) {
			t.Errorf("line %d: expected component %q, got %s", i, want, lines[i])
		}
	}
}

func TestLevelFor(t *testing.T) {
	if LevelFor(true) != "debug" || LevelFor(false) != "info" {
		t.Error("unexpected LevelFor mapping")
	}
}
