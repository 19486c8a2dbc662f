// Package catalog reads and writes String Catalog (.xcstrings) documents.
//
// The expected file format is:
//
//	{
//	  "sourceLanguage": "en",
//	  "strings": {
//	    "Hello": {
//	      "comment": "Greeting on the welcome screen",
//	      "localizations": {
//	        "fr": { "stringUnit": { "state": "translated", "value": "Bonjour" } },
//	        "de": { "variations": { "plural": { ... } } }
//	      }
//	    }
//	  },
//	  "version": "1.0"
//	}
//
// Only plain string units are interpreted. Variation and substitution
// localizations are kept as raw JSON and written back unchanged.
package catalog

import (
	"encoding/json"
	"sort"
)

// Unit states written by the translator. Catalogs may carry other states
// ("new", "needs_review", ...) which are preserved as-is.
const (
	StateTranslated = "translated"
	StateError      = "error"
)

// Document is an in-memory String Catalog.
type Document struct {
	SourceLanguage string            `json:"sourceLanguage"`
	Strings        map[string]*Group `json:"strings"`
	Version        string            `json:"version,omitempty"`
}

// Group holds every localization of a single entry key.
//
// Keys present in the source file are written back even when empty, so
// "comment": "" and "localizations": {} survive a round trip.
type Group struct {
	Comment         string
	ExtractionState string
	ShouldTranslate *bool
	Localizations   map[string]*Localization

	hasComment         bool
	hasExtractionState bool
	hasLocalizations   bool
}

type groupJSON struct {
	Comment         *string                   `json:"comment,omitempty"`
	ExtractionState *string                   `json:"extractionState,omitempty"`
	ShouldTranslate *bool                     `json:"shouldTranslate,omitempty"`
	Localizations   *map[string]*Localization `json:"localizations,omitempty"`
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw groupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = Group{ShouldTranslate: raw.ShouldTranslate}
	if raw.Comment != nil {
		g.Comment, g.hasComment = *raw.Comment, true
	}
	if raw.ExtractionState != nil {
		g.ExtractionState, g.hasExtractionState = *raw.ExtractionState, true
	}
	if raw.Localizations != nil {
		g.Localizations, g.hasLocalizations = *raw.Localizations, true
	}
	return nil
}

func (g Group) MarshalJSON() ([]byte, error) {
	raw := groupJSON{ShouldTranslate: g.ShouldTranslate}
	if g.Comment != "" || g.hasComment {
		raw.Comment = &g.Comment
	}
	if g.ExtractionState != "" || g.hasExtractionState {
		raw.ExtractionState = &g.ExtractionState
	}
	if len(g.Localizations) > 0 || g.hasLocalizations {
		locs := g.Localizations
		if locs == nil {
			locs = map[string]*Localization{}
		}
		raw.Localizations = &locs
	}
	return marshalUnescaped(raw)
}

// Localization is one language's value for an entry. Exactly one of the
// fields is set in a well-formed catalog.
type Localization struct {
	StringUnit    *StringUnit     `json:"stringUnit,omitempty"`
	Variations    json.RawMessage `json:"variations,omitempty"`
	Substitutions json.RawMessage `json:"substitutions,omitempty"`
}

// StringUnit is a plain translated string together with its state tag.
type StringUnit struct {
	State string `json:"state"`
	Value string `json:"value"`
}

// Kind classifies the shape of a Localization.
type Kind int

const (
	KindString Kind = iota
	KindVariations
	KindSubstitutions
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "stringUnit"
	case KindVariations:
		return "variations"
	case KindSubstitutions:
		return "substitutions"
	default:
		return "empty"
	}
}

// Kind reports the shape of l. Variations and substitutions win over a
// string unit, because the string unit of such an entry is only a template.
func (l *Localization) Kind() Kind {
	switch {
	case l == nil:
		return KindEmpty
	case len(l.Variations) > 0:
		return KindVariations
	case len(l.Substitutions) > 0:
		return KindSubstitutions
	case l.StringUnit != nil:
		return KindString
	default:
		return KindEmpty
	}
}

// IsSupportedFormat reports whether l is a plain string unit.
func (l *Localization) IsSupportedFormat() bool {
	return l.Kind() == KindString
}

// HasTranslation reports whether l is a plain string unit with a non-empty value.
func (l *Localization) HasTranslation() bool {
	return l.IsSupportedFormat() && l.StringUnit.Value != ""
}

// NewStringLocalization builds a plain string unit localization.
func NewStringLocalization(state, value string) *Localization {
	return &Localization{StringUnit: &StringUnit{State: state, Value: value}}
}

// New returns an empty document for sourceLang.
func New(sourceLang string) *Document {
	return &Document{
		SourceLanguage: sourceLang,
		Strings:        make(map[string]*Group),
		Version:        "1.0",
	}
}

// Keys returns the entry keys in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Strings))
	for k := range d.Strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group returns the group for key, or nil.
func (d *Document) Group(key string) *Group {
	return d.Strings[key]
}

// Languages returns every language code that appears in any group, sorted.
func (d *Document) Languages() []string {
	seen := make(map[string]bool)
	for _, g := range d.Strings {
		if g == nil {
			continue
		}
		for lang := range g.Localizations {
			seen[lang] = true
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Localization returns the localization for lang, or nil when the language
// has not been attempted yet.
func (g *Group) Localization(lang string) *Localization {
	if g == nil || g.Localizations == nil {
		return nil
	}
	return g.Localizations[lang]
}

// SetLocalization replaces the localization for lang.
func (g *Group) SetLocalization(lang string, l *Localization) {
	if g.Localizations == nil {
		g.Localizations = make(map[string]*Localization)
	}
	g.Localizations[lang] = l
}

// SourceText returns the text to translate for key: the source-language
// value when present and non-empty, otherwise the key itself.
func (d *Document) SourceText(key string) string {
	if l := d.Strings[key].Localization(d.SourceLanguage); l.HasTranslation() {
		return l.StringUnit.Value
	}
	return key
}
