package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

// keywordPrefix matches the words that introduce a counterparty in MoMo
// narration, with an optional ':' separator.
const keywordPrefix = `(?i:\b(?:paid to|sent to|recipient|from|to))[:\s]+`

// PatternRule captures the text that follows a keyword and accepts it when
// the accept predicate (if any) agrees.
type PatternRule struct {
	Name   string
	re     *regexp.Regexp
	accept func(string) bool
}

// NewPatternRule compiles capture as the text following one of the keywords
func NewPatternRule(name, capture string, accept func(string) bool) (*PatternRule, error) {
	re, err := regexp.Compile(keywordPrefix + `(` + capture + `)`)
	if err != nil {
		return nil, err
	}

	return &PatternRule{
		Name:   name,
		re:     re,
		accept: accept,
	}, nil
}

func mustPatternRule(name, capture string, accept func(string) bool) *PatternRule {
	r, err := NewPatternRule(name, capture, accept)
	if err != nil {
		panic(err)
	}
	return r
}

// Match implements the domain.ExtractionRule interface
func (r *PatternRule) Match(body string) (string, bool) {
	for _, m := range r.re.FindAllStringSubmatch(body, -1) {
		if r.accept != nil && !r.accept(m[1]) {
			continue
		}
		return m[1], true
	}

	return "", false
}

// NewLocalPhoneRule matches Rwandan mobile numbers, 07XXXXXXXX or +250 7XXXXXXXX
func NewLocalPhoneRule() *PatternRule {
	return mustPatternRule("local-phone", `07\d{8}|\+?250\s?7\d{8}`, nil)
}

// NewLongNumberRule matches any phone-like run of 10 to 15 digits
func NewLongNumberRule() *PatternRule {
	return mustPatternRule("long-number", `\+?\d{10,15}`, nil)
}

// NewCodeRule matches alphanumeric merchant or agent codes of at least minLen
// characters that contain a digit.
func NewCodeRule(minLen int) *PatternRule {
	return mustPatternRule("code", `[A-Za-z0-9]+`, func(s string) bool {
		return len(s) >= minLen && strings.IndexFunc(s, unicode.IsDigit) >= 0
	})
}

// NewNameRule matches a sequence of 1 to maxWords capitalized words
func NewNameRule(maxWords int) *PatternRule {
	if maxWords < 1 {
		maxWords = 1
	}
	capture := `[A-Z][a-zA-Z'-]*(?:[ \t]+[A-Z][a-zA-Z'-]*){0,` + strconv.Itoa(maxWords-1) + `}`
	return mustPatternRule("name", capture, nil)
}

var _ domain.ExtractionRule = (*PatternRule)(nil)
