package service

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Juan Garcia", "JUAN GARCIA"},
		{"diacritics stripped", "José María Muñoz", "JOSE MARIA MUNOZ"},
		{"periods removed", "J. M. Pérez", "J M PEREZ"},
		{"whitespace collapsed", "  Ana   \t Torres  ", "ANA TORRES"},
		{"all at once", " D. Ángel  Núñez. ", "D ANGEL NUNEZ"},
		{"already normalized", "PEDRO RUIZ", "PEDRO RUIZ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Matching is the whole point: two differently formatted spellings of one
// person must collide.
func TestNormalizeNameMatches(t *testing.T) {
	if NormalizeName("José María Pérez") != NormalizeName("JOSE MARIA. PEREZ ") {
		t.Error("differently formatted spellings of the same name do not normalize equal")
	}
	// ñ decomposes to n + combining tilde, so it collapses to N.
	if got := NormalizeName("Ángela Ibáñez"); got != "ANGELA IBANEZ" {
		t.Errorf("got %q, want ANGELA IBANEZ", got)
	}
}
