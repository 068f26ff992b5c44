package extractor

import (
	"regexp"
	"strings"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const (
	// NotAvailable is returned when no recipient can be derived
	NotAvailable = "N/A"

	defaultCodeMinLen   = 6
	defaultNameMaxWords = 3
)

var trailingPreposition = regexp.MustCompile(`(?i)(?:^|\s+)(?:with|at|on|via|using|from|to)$`)

// Extractor implements the domain.RecipientExtractor interface
type Extractor struct {
	rules []domain.ExtractionRule
}

// NewExtractor creates a new Extractor with the given rules
func NewExtractor(rules ...domain.ExtractionRule) *Extractor {
	if len(rules) == 0 {

		// Default rules, most specific first
		rules = []domain.ExtractionRule{
			NewLocalPhoneRule(),
			NewLongNumberRule(),
			NewCodeRule(defaultCodeMinLen),
			NewNameRule(defaultNameMaxWords),
		}
	}

	return &Extractor{
		rules: rules,
	}
}

// Extract returns the counterparty named in body, or NotAvailable. Only the
// first rule that matches is considered.
func (e *Extractor) Extract(body string) string {
	if body == "" {
		return NotAvailable
	}

	for _, rule := range e.rules {
		raw, found := rule.Match(body)
		if !found {
			continue
		}

		if cleaned := clean(raw); cleaned != "" {
			return cleaned
		}
		return NotAvailable
	}

	return NotAvailable
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	for {
		stripped := strings.TrimSpace(trailingPreposition.ReplaceAllString(s, ""))
		if stripped == s {
			return s
		}
		s = stripped
	}
}

var _ domain.RecipientExtractor = (*Extractor)(nil)
