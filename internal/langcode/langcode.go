// Package langcode validates catalog language codes and names them for prompts.
package langcode

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Parse validates a catalog language code such as "fr", "pt-BR" or
// "zh-Hans" and returns the matching tag. Underscores are accepted as
// separators ("pt_BR").
func Parse(code string) (language.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Und, fmt.Errorf("empty language code")
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag, nil
}

// Name returns the English display name for code ("fr" → "French",
// "pt-BR" → "Brazilian Portuguese"). Unknown codes are returned unchanged.
func Name(code string) string {
	tag, err := Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// Describe formats code for a prompt, e.g. "French (fr)".
func Describe(code string) string {
	name := Name(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// Canonical returns the BCP-47 spelling of code as String Catalogs use it:
// "pt_BR" and "PT-br" become "pt-BR", "FR" becomes "fr".
func Canonical(code string) (string, error) {
	tag, err := Parse(code)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// Normalize canonicalizes every code in codes, dropping blanks and
// duplicates while keeping the caller's order. "fr" and "FR" count as the
// same language.
func Normalize(codes []string) ([]string, error) {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if strings.TrimSpace(c) == "" {
			continue
		}
		canon, err := Canonical(c)
		if err != nil {
			return nil, err
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, canon)
	}
	return out, nil
}

// Same reports whether two codes name the same language tag.
func Same(a, b string) bool {
	ta, errA := Parse(a)
	tb, errB := Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return ta == tb
}
