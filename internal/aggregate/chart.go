package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

// ChartData is the series handed to chart renderers: counts feed the bar
// chart, totals feed the pie chart.
type ChartData struct {
	Labels   []string          `json:"labels"`
	Counts   []int             `json:"counts"`
	Totals   []decimal.Decimal `json:"totals"`
	Averages []decimal.Decimal `json:"averages"`
}

// Chart flattens aggs into parallel series
func Chart(aggs []domain.CategoryAggregate) ChartData {
	data := ChartData{
		Labels:   make([]string, len(aggs)),
		Counts:   make([]int, len(aggs)),
		Totals:   make([]decimal.Decimal, len(aggs)),
		Averages: make([]decimal.Decimal, len(aggs)),
	}

	for i, agg := range aggs {
		data.Labels[i] = agg.Category
		data.Counts[i] = agg.Count
		data.Totals[i] = agg.TotalAmount
		data.Averages[i] = agg.AvgAmount
	}

	return data
}

// Len returns the number of categories in the chart
func (c ChartData) Len() int {
	return len(c.Labels)
}
