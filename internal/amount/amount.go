// Package amount coerces the heterogeneous amount representations found in
// transaction feeds (numbers, "1,500.00 RWF" style strings) into decimals.
package amount

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	// Longest leading float prefix once everything but digits, '.' and '-' is gone.
	currencyPrefix = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)`)

	// Leading float prefix of raw text, exponent allowed.
	floatPrefix = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`)
)

// Normalize returns v as a decimal. Numeric values are returned unchanged,
// strings are parsed like ParseCurrency and anything unparseable becomes zero.
func Normalize(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return fromFloat(n)
	case float32:
		return fromFloat(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case int32:
		return decimal.NewFromInt(int64(n))
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d
		}
		d, _ := ParseCurrency(n.String())
		return d
	case string:
		d, _ := ParseCurrency(n)
		return d
	default:
		return decimal.Zero
	}
}

// ParseCurrency strips every character that is not a digit, a decimal point or
// a minus sign and parses what is left. ok is false when s is empty or nothing
// numeric remains, so filter callers can treat the value as unconstrained.
func ParseCurrency(s string) (d decimal.Decimal, ok bool) {
	if s == "" {
		return decimal.Zero, false
	}

	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	return parsePrefix(currencyPrefix, stripped)
}

// ParseThreshold parses the leading number of s without stripping anything
// first. Empty or non-numeric text yields zero, meaning "no minimum".
func ParseThreshold(s string) decimal.Decimal {
	d, ok := parsePrefix(floatPrefix, strings.TrimLeftFunc(s, unicode.IsSpace))
	if !ok {
		return decimal.Zero
	}
	return d
}

func parsePrefix(re *regexp.Regexp, s string) (decimal.Decimal, bool) {
	m := re.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}

	// decimal rejects a dangling point ("5." or "5.e3")
	m = strings.Replace(m, ".e", "e", 1)
	m = strings.Replace(m, ".E", "E", 1)
	m = strings.TrimSuffix(m, ".")
	m = strings.TrimPrefix(m, "+")

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
