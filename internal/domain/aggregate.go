package domain

import "github.com/shopspring/decimal"

// CategoryAggregate contains the per-category statistics used by charts
type CategoryAggregate struct {
	Category    string          `json:"category"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AvgAmount   decimal.Decimal `json:"avg_amount"`
}
