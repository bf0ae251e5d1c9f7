package utils

import (
	"regexp"
	"strings"
)

// maxNameLength keeps "{name}.epub" and "NNN-{name}.txt" under the common
// 255 byte file name limit for titles in any script.
const maxNameLength = 60

var unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanDirName makes a story or chapter title usable as a file name.
// Surrounding whitespace is dropped before unsafe characters are replaced
// and the result is cut to maxNameLength runes.
func CleanDirName(input string) string {
	cleaned := unsafeNameChars.ReplaceAllString(strings.TrimSpace(input), "_")

	if runes := []rune(cleaned); len(runes) > maxNameLength {
		cleaned = strings.TrimSpace(string(runes[:maxNameLength]))
	}

	return cleaned
}
