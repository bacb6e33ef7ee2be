// Package payload repairs the non-standard literal syntax some backends emit
// (single-quoted keys and strings, numerals wrapped in marker tokens such as
// Decimal('3.50')) so the text can be handed to encoding/json.
package payload

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DefaultWrapperToken is the numeric marker emitted by DynamoDB-backed lambdas
const DefaultWrapperToken = "Decimal"

// Sanitizer applies text-level repairs ahead of structured parsing.
// It is safe for concurrent use.
type Sanitizer struct {
	wrapper *regexp.Regexp
}

// NewSanitizer builds a Sanitizer that strips the given wrapper tokens.
// With no tokens it falls back to DefaultWrapperToken.
func NewSanitizer(tokens ...string) *Sanitizer {
	names := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			names = append(names, regexp.QuoteMeta(t))
		}
	}
	if len(names) == 0 {
		names = append(names, DefaultWrapperToken)
	}

	pattern := `\b(?:` + strings.Join(names, "|") + `)\(\s*['"](-?\d+(?:\.\d+)?)['"]\s*\)`
	return &Sanitizer{wrapper: regexp.MustCompile(pattern)}
}

// StripWrappers replaces every wrapper token with its bare numeral.
// Replacement runs to a fixpoint so nested wrappers cannot survive.
func (s *Sanitizer) StripWrappers(text string) string {
	for {
		out := s.wrapper.ReplaceAllString(text, "$1")
		if out == text {
			return out
		}
		text = out
	}
}

// Sanitize strips wrapper tokens, then turns single quotes into double quotes.
// Text that is already valid JSON once the wrappers are gone keeps its quotes,
// so apostrophes inside well-formed content survive.
func (s *Sanitizer) Sanitize(text string) string {
	text = s.StripWrappers(text)
	if json.Valid([]byte(text)) {
		return text
	}
	return strings.ReplaceAll(text, "'", `"`)
}
