package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanDirName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain Title", "Plain Title"},
		{`a<b>:c"d/e\f|g?h*i`, "a_b__c_d_e_f_g_h_i"},
		{"  padded\t", "padded"},
		{"\ttab\x01char\n", "tab_char"},
		{"inner\tgap", "inner_gap"},
	}
	for _, tt := range tests {
		if got := CleanDirName(tt.in); got != tt.want {
			t.Errorf("CleanDirName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanDirNameLongTitle(t *testing.T) {
	long := strings.Repeat("物語", 100)
	got := CleanDirName(long)
	if n := utf8.RuneCountInString(got); n != maxNameLength {
		t.Errorf("rune count = %d, want %d", n, maxNameLength)
	}
	if !utf8.ValidString(got) || !strings.HasPrefix(long, got) {
		t.Errorf("CleanDirName() = %q is not a clean prefix", got)
	}

	// a cut landing on a space leaves no trailing blank
	spaced := strings.Repeat("a", maxNameLength-1) + " tail"
	if got := CleanDirName(spaced); got != strings.Repeat("a", maxNameLength-1) {
		t.Errorf("CleanDirName() = %q", got)
	}
}
