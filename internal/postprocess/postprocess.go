// Package postprocess turns a raw LLM reply into the bare translated string
// that goes into a String Catalog unit.
package postprocess

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

// Clean strips reply artifacts and returns the translated text:
//  1. reasoning blocks (<think>…</think> and truncated ones)
//  2. a surrounding markdown code fence
//  3. a JSON envelope echoing the request payload
//  4. a leading "Here is the translation:" style echo
//  5. quote wrapping the source text did not have
//
// Leading and trailing whitespace of source is re-applied, so a value such as
// "Name: " keeps its trailing space.
func Clean(source, reply string) string {
	text := removeThinkingBlocks(reply)
	text = removeCodeFence(text)
	text = unwrapJSONEnvelope(text)
	text = removeInstructionEchoes(text)
	if !isQuoteWrapped(strings.TrimSpace(source)) {
		text = removeQuoteWrapping(text)
	}
	return Pad(source, text)
}

// Pad trims text and surrounds it with the leading and trailing whitespace
// of source. An empty text stays empty.
func Pad(source, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return leadingSpace(source) + text + trailingSpace(source)
}

// thinkingBlockRe matches complete reasoning blocks. RE2 has no
// backreferences, so every tag pair is listed.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened reasoning tag whose closing tag is missing.
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var codeFenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*\\s*\n(.*?)\n?```$")

func removeCodeFence(text string) string {
	if m := codeFenceRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// unwrapJSONEnvelope handles models that answer the JSON request payload
// with JSON, e.g. {"text": "Bonjour"} or {"translation": "Bonjour"}.
func unwrapJSONEnvelope(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return text
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return text
	}
	for _, key := range []string{"translation", "translatedText", "text", "value"} {
		if s, ok := obj[key].(string); ok {
			return s
		}
	}
	return text
}

// echoPatterns match introductory phrases that models prepend even when told
// not to. Each is anchored to the start and requires a colon.
var echoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:translated |french |german |spanish )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.!]? here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

var quotePairs = [][2]rune{
	{'"', '"'},
	{'\'', '\''},
	{'«', '»'},
	{'“', '”'},
	{'‘', '’'},
	{'「', '」'},
}

func isQuoteWrapped(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}
	first, last := runes[0], runes[len(runes)-1]
	for _, p := range quotePairs {
		if first == p[0] && last == p[1] {
			return true
		}
	}
	return false
}

// removeQuoteWrapping strips one matching pair of outer quotes.
func removeQuoteWrapping(text string) string {
	text = strings.TrimSpace(text)
	if !isQuoteWrapped(text) {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[1 : len(runes)-1]))
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

func trailingSpace(s string) string {
	return s[len(strings.TrimRightFunc(s, unicode.IsSpace)):]
}
