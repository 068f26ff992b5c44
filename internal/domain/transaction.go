package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tirasundara/momo-dashboard/internal/amount"
)

// Record represents one mobile-money transaction as delivered by the API
type Record struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Category      Text   `json:"category"`
	SMSBody       Text   `json:"sms_body"`
	SMSDate       string `json:"sms_date"`
	SMSTime       string `json:"sms_time,omitempty"`
	Amount        Amount `json:"amount"`
	Type          string `json:"type"`
}

// Text is a string field that may be null in the source data
type Text struct {
	Value string
	Valid bool
}

// NewText returns a non-null Text
func NewText(s string) Text {
	return Text{Value: s, Valid: true}
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Text{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding text field: %w", err)
	}

	*t = NewText(s)
	return nil
}

// Amount is a normalized transaction amount. It decodes from a JSON number, a
// currency-formatted string or null, and always encodes as a JSON number.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d as an Amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFrom normalizes any supported representation into an Amount
func AmountFrom(v any) Amount {
	return Amount{Decimal: amount.Normalize(v)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON never fails on malformed amounts; they coerce to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		a.Decimal = decimal.Zero
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = amount.Normalize(s)
	default:
		a.Decimal = amount.Normalize(json.Number(data))
	}

	return nil
}
