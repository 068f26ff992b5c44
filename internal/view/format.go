// Package view renders dashboard data for the terminal.
package view

import (
	"regexp"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	// PreviewLength is how much of an SMS body the table shows
	PreviewLength = 50

	notAvailable = "N/A"
	dateLayout   = "2006-01-02"
	displayDate  = "02 Jan 2006"
)

// Truncate shortens text to max characters followed by "..."
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// Highlight wraps every case-insensitive occurrence of term in text with
// mark. Text is returned unchanged when term is empty or cannot be compiled.
func Highlight(text, term string, mark func(string) string) string {
	if term == "" || text == "" || mark == nil {
		return text
	}

	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return text
	}

	return re.ReplaceAllStringFunc(text, mark)
}

// FormatDateTime renders an SMS date and optional time. Dates that do not
// parse are shown as stored.
func FormatDateTime(date, clock string) string {
	if date == "" {
		return notAvailable
	}

	formatted := date
	if t, err := time.Parse(dateLayout, date); err == nil {
		formatted = t.Format(displayDate)
	}

	if clock == "" {
		return formatted
	}
	return formatted + " " + clock
}

// FormatAmount renders an amount with thousands separators
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return humanize.Comma(d.IntPart())
	}
	return humanize.CommafWithDigits(d.InexactFloat64(), 2)
}
