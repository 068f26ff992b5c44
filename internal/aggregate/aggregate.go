// Package aggregate groups records by category for the chart views.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

// ChartTopN is the number of categories shown on charts
const ChartTopN = 10

// Aggregate groups records by their exact category string, in the order each
// category is first seen. Null categories are grouped under "".
func Aggregate(records []domain.Record) []domain.CategoryAggregate {
	index := make(map[string]int)
	aggs := make([]domain.CategoryAggregate, 0)

	for _, rec := range records {
		key := rec.Category.Value

		i, ok := index[key]
		if !ok {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, domain.CategoryAggregate{
				Category:    key,
				TotalAmount: decimal.Zero,
			})
		}

		aggs[i].Count++
		aggs[i].TotalAmount = aggs[i].TotalAmount.Add(rec.Amount.Decimal)
	}

	for i := range aggs {
		aggs[i].AvgAmount = aggs[i].TotalAmount.Div(decimal.NewFromInt(int64(aggs[i].Count)))
	}

	return aggs
}

// TopByCount returns at most n aggregates ordered by count, highest first.
// Ties keep their input order. aggs is not modified.
func TopByCount(aggs []domain.CategoryAggregate, n int) []domain.CategoryAggregate {
	sorted := make([]domain.CategoryAggregate, len(aggs))
	copy(sorted, aggs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}
