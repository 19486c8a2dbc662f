package translator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchGlossary returns the terms of glossary that occur in text as whole
// words, compared case-insensitively. It returns nil when nothing matches,
// so requests for unrelated strings carry no terminology block.
func MatchGlossary(glossary map[string]string, text string) map[string]string {
	if len(glossary) == 0 || text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched map[string]string
	for src, tgt := range glossary {
		if !containsWord(lower, strings.ToLower(strings.TrimSpace(src))) {
			continue
		}
		if matched == nil {
			matched = make(map[string]string)
		}
		matched[src] = tgt
	}
	return matched
}

// containsWord reports whether term occurs in text with no letter or digit
// directly before or after it.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		if !wordRuneBefore(text, start) && !wordRuneAt(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
