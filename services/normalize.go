package services

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

var normalizeReplacer = strings.NewReplacer(
	"–", "-",
	"—", "-",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"mm^2", "mm²",
	"mm2", "mm²",
)

// Normalize canonicalizes a free-text item name so labels typed in the UI
// match the catalog despite minor spelling drift: lowercase, straight dashes
// and quotes, a single spelling for squared-unit notation, and collapsed
// whitespace. Normalize("") == "" and Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = normalizeReplacer.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
