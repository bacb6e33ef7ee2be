package report

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/payload"
)

// attentionTrue is the only token the analysis pipeline uses for "attentive"
const attentionTrue = "True"

// arrayLiteral matches the first bracketed span with at least one character inside
var arrayLiteral = regexp.MustCompile(`\[.+?\]`)

// Parser decodes the loosely-typed report, objects and attention fields.
// Each decode is a sanitize step followed by a structured parse.
type Parser struct {
	sanitizer *payload.Sanitizer
}

// NewParser creates a new Parser instance
func NewParser(sanitizer *payload.Sanitizer) *Parser {
	if sanitizer == nil {
		sanitizer = payload.NewSanitizer()
	}
	return &Parser{sanitizer: sanitizer}
}

// NormalizeAttention maps the attention indicator to a boolean.
// Only the exact token "True" is true; "False", "", "true", "1" and the rest are false.
func NormalizeAttention(raw string) bool {
	return raw == attentionTrue
}

// DecodeObjects extracts the detected-object labels.
// The returned slice is never nil; on a parse failure it is empty and the
// error wraps entities.ErrDecode.
func (p *Parser) DecodeObjects(raw entities.ObjectsField) ([]string, error) {
	if raw.IsList() {
		if raw.Labels == nil {
			return []string{}, nil
		}
		return raw.Labels, nil
	}

	text := strings.TrimSpace(raw.Text)
	if text == "" {
		return []string{}, nil
	}

	match := arrayLiteral.FindString(text)
	if match == "" {
		return []string{}, nil
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(p.sanitizer.Sanitize(match)), &items); err != nil {
		return []string{}, fmt.Errorf("%w: objects %q: %v", entities.ErrDecode, match, err)
	}

	labels, err := cast.ToStringSliceE(items)
	if err != nil {
		return []string{}, fmt.Errorf("%w: objects %q: %v", entities.ErrDecode, match, err)
	}
	return labels, nil
}

// DecodeReport parses the report payload into its text fields.
// Failures wrap entities.ErrDecode and are left for the caller to handle.
func (p *Parser) DecodeReport(raw string) (entities.ReportFields, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(p.sanitizer.Sanitize(raw)), &fields); err != nil {
		return entities.ReportFields{}, fmt.Errorf("%w: report: %v", entities.ErrDecode, err)
	}
	if fields == nil {
		return entities.ReportFields{}, fmt.Errorf("%w: report is not a mapping", entities.ErrDecode)
	}

	return entities.ReportFields{
		Avaliacao:     cast.ToString(fields["avaliacao"]),
		Correcao:      cast.ToString(fields["correcao"]),
		Transcription: cast.ToString(fields["transcription"]),
	}, nil
}
