package placeholder_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/valpere/xcstran/internal/placeholder"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "no specifiers", text: "Hello, world!", want: nil},
		{name: "object", text: "Hello, %@!", want: []string{"%@"}},
		{name: "long long", text: "%lld items", want: []string{"%lld"}},
		{name: "positional", text: "%2$@ sent %1$@ a message", want: []string{"%2$@", "%1$@"}},
		{name: "precision", text: "Total: %.2f", want: []string{"%.2f"}},
		{name: "literal percent", text: "100%% done", want: []string{"%%"}},
		{name: "substitution", text: "%#@files@ in %#@folders@", want: []string{"%#@files@", "%#@folders@"}},
		{name: "mixed", text: "%#@count@ of %d", want: []string{"%#@count@", "%d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := placeholder.Find(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Find(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsTranslatable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "", want: false},
		{text: "   ", want: false},
		{text: "\n\t", want: false},
		{text: "%@", want: false},
		{text: "%1$@ – %2$@", want: false},
		{text: "%lld", want: false},
		{text: "%#@count@", want: false},
		{text: "…", want: false},
		{text: "🎉", want: false},
		{text: "👍🏽", want: false},
		{text: "❤️", want: false},
		{text: "(%d)", want: false},
		{text: "Hello", want: true},
		{text: "%@ sent you a message", want: true},
		{text: "%lld items", want: true},
		{text: "OK", want: true},
		{text: "42", want: true},
		{text: "Привіт", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := placeholder.IsTranslatable(tt.text); got != tt.want {
				t.Errorf("IsTranslatable(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidate_AllPresent(t *testing.T) {
	missing := placeholder.Validate("%@ has %lld items", "%@ a %lld éléments")
	if len(missing) != 0 {
		t.Errorf("expected no missing, got %v", missing)
	}
}

func TestValidate_Reordered(t *testing.T) {
	missing := placeholder.Validate("%1$@ invited %2$@", "%2$@ a été invité par %1$@")
	if len(missing) != 0 {
		t.Errorf("expected reordering to be accepted, got %v", missing)
	}
}

func TestValidate_SomeMissing(t *testing.T) {
	missing := placeholder.Validate("%@ and %@ have %d", "%@ et ont")
	want := []string{"%@", "%d"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("expected missing %v, got %v", want, missing)
	}
}

func TestInstructionHint(t *testing.T) {
	if hint := placeholder.InstructionHint("Hello"); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}

	hint := placeholder.InstructionHint("%@ has %lld items")
	if !strings.Contains(hint, "%@") || !strings.Contains(hint, "%lld") {
		t.Errorf("expected hint to list specifiers, got %q", hint)
	}
}
