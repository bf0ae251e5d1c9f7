package template

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed intro.xhtml
var IntroXHTML string

//go:embed chapter.xhtml
var ChapterXHTML string

// Fields maps placeholder names, without braces, to their values.
type Fields map[string]string

// LoadPage reads a page template from path, or returns fallback when path is
// empty.
func LoadPage(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read page template %v: %w", path, err)
	}
	return string(data), nil
}

// FormatPage substitutes every {name} in tmpl with fields[name]. Values are
// inserted verbatim and never rescanned, so a value containing "{title}"
// stays as is. Unknown placeholders are left untouched.
func FormatPage(tmpl string, fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", fields[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
