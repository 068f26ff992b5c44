package domain

import "fmt"

// AmountMode selects how the amount filter constrains records
type AmountMode string

// Amount modes
const (
	// AmountExact keeps records within the tolerance of the filter value
	AmountExact AmountMode = "exact"
	// AmountThreshold keeps records whose amount is at least the filter value
	AmountThreshold AmountMode = "threshold"
)

// ParseAmountMode validates a mode name
func ParseAmountMode(s string) (AmountMode, error) {
	switch m := AmountMode(s); m {
	case AmountExact, AmountThreshold:
		return m, nil
	default:
		return "", fmt.Errorf("unknown amount mode %q", s)
	}
}

// Criteria is the set of user-entered filter values. Every field is raw text;
// an empty field leaves the corresponding dimension unconstrained.
type Criteria struct {
	Search string `json:"search"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// IsEmpty reports whether no filter is set
func (c Criteria) IsEmpty() bool {
	return c.Search == "" && c.Type == "" && c.Amount == ""
}
