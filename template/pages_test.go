package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatPage(t *testing.T) {
	tests := []struct {
		name   string
		tmpl   string
		fields Fields
		want   string
	}{
		{"simple", "<h1>{title}</h1>", Fields{"title": "Ch1"}, "<h1>Ch1</h1>"},
		{"repeated", "{a}-{a}", Fields{"a": "x"}, "x-x"},
		{"unknown kept", "{a} {zzz}", Fields{"a": "x"}, "x {zzz}"},
		{"no rescan", "{text}", Fields{"text": "{title}", "title": "T"}, "{title}"},
		{"no escaping", "{text}", Fields{"text": "<p>a & b</p>"}, "<p>a & b</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPage(tt.tmpl, tt.fields); got != tt.want {
				t.Errorf("FormatPage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbeddedPagesHavePlaceholders(t *testing.T) {
	for _, p := range []string{"{book_title}", "{author}", "{author_user}", "{description}", "{last_modification}", "{stars}"} {
		if !strings.Contains(IntroXHTML, p) {
			t.Errorf("intro template lacks %s", p)
		}
	}
	for _, p := range []string{"{title}", "{text}", "{number}"} {
		if !strings.Contains(ChapterXHTML, p) {
			t.Errorf("chapter template lacks %s", p)
		}
	}
}

func TestLoadPage(t *testing.T) {
	got, err := LoadPage("", "fallback")
	if err != nil || got != "fallback" {
		t.Fatalf("LoadPage(\"\") = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<p>{title}</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = LoadPage(path, "fallback")
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}
	if got != "<p>{title}</p>" {
		t.Errorf("LoadPage() = %q", got)
	}

	if _, err := LoadPage(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Error("LoadPage() on a missing file should fail")
	}
}
