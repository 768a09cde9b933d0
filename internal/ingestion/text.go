package ingestion

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[ \t]+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes free text from input files: CRLF line endings become
// LF, runs of spaces collapse, trailing whitespace is trimmed and more than
// one blank line in a row is reduced to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = whitespaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
	}

	result := strings.Join(lines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// normalizeHeader maps a column header to its canonical key: lower-case,
// byte-order mark stripped and inner whitespace or dashes replaced by underscores.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), "_")
}
