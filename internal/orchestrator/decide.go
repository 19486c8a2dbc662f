package orchestrator

import "github.com/valpere/xcstran/internal/catalog"

// Decision is what a task does with one (entry, language) slot.
type Decision int

const (
	Translate Decision = iota
	Skip
	CopyKeyVerbatim
	WarnUnsupported
)

func (d Decision) String() string {
	switch d {
	case Translate:
		return "translate"
	case Skip:
		return "skip"
	case CopyKeyVerbatim:
		return "copy"
	case WarnUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Decide picks the action for a slot. Rules are applied in order: an
// existing non-string localization is never touched, an existing non-empty
// value is kept unless force is set, entries opted out of translation get
// their key copied, everything else is translated.
func Decide(existing *catalog.Localization, force bool, shouldTranslate *bool) Decision {
	if existing != nil && existing.Kind() != catalog.KindEmpty && !existing.IsSupportedFormat() {
		return WarnUnsupported
	}
	if existing.HasTranslation() && !force {
		return Skip
	}
	if shouldTranslate != nil && !*shouldTranslate {
		return CopyKeyVerbatim
	}
	return Translate
}
