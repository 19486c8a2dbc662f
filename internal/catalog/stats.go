package catalog

// LanguageStats counts the units of one language by outcome.
type LanguageStats struct {
	Language    string
	Total       int
	Translated  int
	Errors      int
	Missing     int
	Unsupported int
	// Other counts string units in a provider-defined state such as "new"
	// or "needs_review".
	Other int
}

// Done reports how many entries need no further work.
func (s LanguageStats) Done() int {
	return s.Translated + s.Other
}

// Stats computes per-language counts for lang.
func (d *Document) Stats(lang string) LanguageStats {
	st := LanguageStats{Language: lang, Total: len(d.Strings)}
	for _, g := range d.Strings {
		l := g.Localization(lang)
		switch {
		case l.Kind() == KindEmpty:
			st.Missing++
		case !l.IsSupportedFormat():
			st.Unsupported++
		case l.StringUnit.State == StateError:
			st.Errors++
		case !l.HasTranslation():
			st.Missing++
		case l.StringUnit.State == StateTranslated:
			st.Translated++
		default:
			st.Other++
		}
	}
	return st
}
