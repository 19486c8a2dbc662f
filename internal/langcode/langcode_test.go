package langcode

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{code: "fr"},
		{code: "pt-BR"},
		{code: "pt_BR"},
		{code: "zh-Hans"},
		{code: "", wantErr: true},
		{code: "not a language", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := Parse(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestName(t *testing.T) {
	if got := Name("fr"); got != "French" {
		t.Errorf("Name(fr) = %q, want French", got)
	}
	if got := Name("de"); got != "German" {
		t.Errorf("Name(de) = %q, want German", got)
	}
	if got := Name("???"); got != "???" {
		t.Errorf("expected unknown code unchanged, got %q", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe("fr"); got != "French (fr)" {
		t.Errorf("Describe(fr) = %q", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "fr", want: "fr"},
		{code: "FR", want: "fr"},
		{code: "pt_BR", want: "pt-BR"},
		{code: "pt-br", want: "pt-BR"},
		{code: " zh-hans ", want: "zh-Hans"},
		{code: "en-GB", want: "en-GB"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Canonical(tt.code)
			if err != nil {
				t.Fatalf("Canonical(%q): %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}

	if _, err := Canonical("not a language"); err == nil {
		t.Error("expected error for invalid code")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  []string
	}{
		{name: "blanks and repeats", codes: []string{"fr", " de ", "", "fr", "ja"}, want: []string{"fr", "de", "ja"}},
		{name: "case variants", codes: []string{"fr", "FR", "Fr"}, want: []string{"fr"}},
		{name: "separator variants", codes: []string{"pt_BR", "pt-BR", "zh-hans"}, want: []string{"pt-BR", "zh-Hans"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.codes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Normalize([]string{"fr", "???"}); err == nil {
		t.Error("expected error for invalid code")
	}
}

func TestSame(t *testing.T) {
	if !Same("en", "en") {
		t.Error("expected en == en")
	}
	if !Same("pt_BR", "pt-BR") {
		t.Error("expected pt_BR == pt-BR")
	}
	if Same("en", "fr") {
		t.Error("expected en != fr")
	}
}
