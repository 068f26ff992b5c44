package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

func TestRecord_UnmarshalJSON(t *testing.T) {
	payload := `[
		{"transaction_id":"7623","category":"Incoming Money","sms_body":"You have received 5,000 RWF from Jane Smith","sms_date":"2024-05-10","sms_time":"14:30:00","amount":5000,"type":"Incoming"},
		{"category":null,"sms_body":null,"sms_date":"2024-05-09","amount":"1,500.00 RWF","type":"Payment"},
		{"category":"Airtime","sms_body":"Airtime","sms_date":"2024-05-08","amount":null,"type":"Airtime"}
	]`

	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 3)

	first := records[0]
	if first.TransactionID != "7623" {
		t.Errorf("Expected TransactionID to be '7623', got '%s'", first.TransactionID)
	}
	assert.Equal(t, domain.NewText("Incoming Money"), first.Category)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(5000)), "Expected 5000, got %s", first.Amount)
	assert.Equal(t, "14:30:00", first.SMSTime)

	second := records[1]
	assert.False(t, second.Category.Valid)
	assert.False(t, second.SMSBody.Valid)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(1500)), "Expected 1500, got %s", second.Amount)

	assert.True(t, records[2].Amount.IsZero())
}

func TestRecord_MarshalJSON(t *testing.T) {
	rec := domain.Record{
		Category: domain.Text{},
		SMSBody:  domain.NewText(`Payment of "1,000" RWF`),
		SMSDate:  "2024-05-10",
		Amount:   domain.AmountFrom("1,000"),
		Type:     "Payment",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"category": null,
		"sms_body": "Payment of \"1,000\" RWF",
		"sms_date": "2024-05-10",
		"amount": 1000,
		"type": "Payment"
	}`, string(data))
}

func TestText_UnmarshalJSON_RejectsNonString(t *testing.T) {
	var txt domain.Text
	err := json.Unmarshal([]byte(`42`), &txt)
	assert.Error(t, err)
}

func TestSummary_MissingCounters(t *testing.T) {
	var s domain.Summary
	require.NoError(t, json.Unmarshal([]byte(`{"total":12,"payments":null}`), &s))

	assert.Equal(t, domain.Summary{Total: 12}, s)
}

func TestParseAmountMode(t *testing.T) {
	m, err := domain.ParseAmountMode("threshold")
	require.NoError(t, err)
	assert.Equal(t, domain.AmountThreshold, m)

	_, err = domain.ParseAmountMode("fuzzy")
	assert.Error(t, err)
}

func TestCriteria_IsEmpty(t *testing.T) {
	assert.True(t, domain.Criteria{}.IsEmpty())
	assert.False(t, domain.Criteria{Amount: "100"}.IsEmpty())
}
