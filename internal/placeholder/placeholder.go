// Package placeholder recognises printf-style format specifiers used in
// String Catalog values (%@, %lld, %1$@, %.2f, %#@count@ ...). Specifiers
// must survive translation untouched, and a value made only of specifiers,
// punctuation, symbols and whitespace is never worth sending to a provider.
package placeholder

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// substitution references: %#@name@
	reSubstitution = regexp.MustCompile(`%#@[A-Za-z0-9_]+@`)

	// positional and plain printf specifiers, including %% and Apple's %@
	reSpecifier = regexp.MustCompile(`%(?:\d+\$)?[-+ #0']*(?:\d+|\*)?(?:\.(?:\d+|\*))?(?:hh|h|ll|l|q|L|z|t|j)?[@dDiuUxXoOfFeEgGcCsSpaA%]`)
)

// Find returns every format specifier in text in order of appearance.
// Substitution references are reported as a single specifier.
func Find(text string) []string {
	var found []string
	rest := reSubstitution.ReplaceAllStringFunc(text, func(m string) string {
		found = append(found, m)
		return " "
	})
	found = append(found, reSpecifier.FindAllString(rest, -1)...)
	return found
}

// Strip removes every format specifier from text.
func Strip(text string) string {
	text = reSubstitution.ReplaceAllString(text, " ")
	return reSpecifier.ReplaceAllString(text, " ")
}

// IsTranslatable reports whether text contains anything a translator could
// change: once format specifiers are removed, at least one rune must be a
// letter or digit. Empty strings, "%@", "-", "🎉" and "\n" are not translatable.
func IsTranslatable(text string) bool {
	for _, r := range Strip(text) {
		if isInert(r) {
			continue
		}
		return true
	}
	return false
}

func isInert(r rune) bool {
	return unicode.IsSpace(r) ||
		unicode.IsPunct(r) ||
		unicode.IsSymbol(r) ||
		unicode.IsControl(r) ||
		unicode.IsMark(r) ||
		unicode.In(r, unicode.Cf)
}

// Validate returns the specifiers of source that do not appear in translated
// as often as they appear in source. Order of the result follows source.
func Validate(source, translated string) []string {
	have := make(map[string]int)
	for _, s := range Find(translated) {
		have[s]++
	}

	var missing []string
	for _, s := range Find(source) {
		if have[s] > 0 {
			have[s]--
			continue
		}
		missing = append(missing, s)
	}
	return missing
}

// InstructionHint returns a sentence to append to an LLM prompt so the model
// keeps the specifiers of text intact. It is empty when text has none.
func InstructionHint(text string) string {
	specs := Find(text)
	if len(specs) == 0 {
		return ""
	}
	return "Keep these format specifiers exactly as written: " + strings.Join(specs, " ")
}
