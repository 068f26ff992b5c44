package view_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tirasundara/momo-dashboard/internal/aggregate"
	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/paging"
	"github.com/tirasundara/momo-dashboard/internal/service"
	"github.com/tirasundara/momo-dashboard/internal/view"
)

func brackets(s string) string { return "[" + s + "]" }

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want string
	}{
		{"case insensitive", "Airtime top up AIRTIME", "airtime", "[Airtime] top up [AIRTIME]"},
		{"regex characters are literal", "Paid 1.500 (fee) 1x500", "1.500 (fee)", "Paid [1.500 (fee)] 1x500"},
		{"empty term", "anything", "", "anything"},
		{"no match", "anything", "zzz", "anything"},
		{"empty text", "", "a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.Highlight(tt.text, tt.term, brackets)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 60)

	assert.Equal(t, strings.Repeat("a", 50)+"...", view.Truncate(long, view.PreviewLength))
	assert.Equal(t, "short", view.Truncate("short", view.PreviewLength))
	assert.Equal(t, strings.Repeat("é", 50), view.Truncate(strings.Repeat("é", 50), 50))
	assert.Equal(t, "", view.Truncate("", 50))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "N/A", view.FormatDateTime("", "10:00:00"))
	assert.Equal(t, "10 May 2024", view.FormatDateTime("2024-05-10", ""))
	assert.Equal(t, "10 May 2024 14:30:00", view.FormatDateTime("2024-05-10", "14:30:00"))
	assert.Equal(t, "yesterday 09:00", view.FormatDateTime("yesterday", "09:00"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,500", view.FormatAmount(decimal.NewFromInt(1500)))
	assert.Equal(t, "0", view.FormatAmount(decimal.Zero))
	assert.Equal(t, "1,250.5", view.FormatAmount(decimal.RequireFromString("1250.50")))
	assert.Equal(t, "3,000,000", view.FormatAmount(decimal.NewFromInt(3000000)))
}

func newRenderer() *view.Renderer {
	// a buffer is not a terminal, so no color codes are emitted
	return view.NewRenderer(&bytes.Buffer{})
}

func TestRenderer_List(t *testing.T) {
	rec := domain.Record{
		Category: domain.NewText("Incoming Money"),
		SMSBody:  domain.NewText("You have received 1,500 RWF from Alice Uwase. Your new balance is 10,000 RWF"),
		SMSDate:  "2024-05-10",
		SMSTime:  "14:30:00",
		Amount:   domain.AmountFrom(1500),
		Type:     "Incoming",
	}

	out := newRenderer().List(service.ListView{
		Rows:     []service.Row{{Record: rec, Recipient: "Alice Uwase"}},
		Page:     paging.Page{Items: []domain.Record{rec}, Number: 2, Size: 1, TotalItems: 3, TotalPages: 3},
		Controls: paging.Controls(2, 3),
		Summary:  domain.Summary{Total: 3, Incomings: 2},
	})

	assert.Contains(t, out, "Total: 3")
	assert.Contains(t, out, "Recipient/Sender")
	assert.Contains(t, out, "10 May 2024 14:30:00")
	assert.Contains(t, out, "Alice Uwase")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "Previous 1 [2] 3 Next")
	assert.Contains(t, out, "Page 2 of 3 (3 transactions)")
}

func TestRenderer_ListEmpty(t *testing.T) {
	out := newRenderer().List(service.ListView{
		Page:    paging.Page{Items: []domain.Record{}, Number: 1},
		Summary: domain.Summary{Total: 3},
	})

	assert.Contains(t, out, "Total: 3")
	assert.Contains(t, out, "No transactions found matching your filters")
	assert.NotContains(t, out, "Previous")
	assert.NotContains(t, out, "refresh")
}

func TestRenderer_ListAfterFailedRefresh(t *testing.T) {
	rec := domain.Record{Category: domain.NewText("Incoming Money"), SMSDate: "2024-05-10", Amount: domain.AmountFrom(1500)}

	out := newRenderer().List(service.ListView{
		Rows:       []service.Row{{Record: rec, Recipient: "Alice Uwase"}},
		Page:       paging.Page{Items: []domain.Record{rec}, Number: 1, Size: 1, TotalItems: 2, TotalPages: 2},
		Controls:   paging.Controls(1, 2),
		Summary:    domain.Summary{Total: 2},
		RefreshErr: fmt.Errorf("%w: status 503", domain.ErrFetchFailed),
	})

	assert.Equal(t, "Failed to load data: failed to fetch dashboard data: status 503. Type 'refresh' to try again.\n", out)
	assert.NotContains(t, out, "Alice Uwase")
	assert.NotContains(t, out, "Total:")
}

func TestRenderer_ListHighlightsSearch(t *testing.T) {
	rec := domain.Record{
		Category: domain.NewText("Incoming Money"),
		SMSBody:  domain.NewText("You have received 1,500 RWF from Alice Uwase"),
		SMSDate:  "2024-05-10",
		Amount:   domain.AmountFrom(1500),
	}

	out := newRenderer().List(service.ListView{
		Rows:     []service.Row{{Record: rec, Recipient: "Alice Uwase"}},
		Page:     paging.Page{Items: []domain.Record{rec}, Number: 1, Size: 1, TotalItems: 1, TotalPages: 1},
		Criteria: domain.Criteria{Search: " alice "},
	})

	assert.Contains(t, out, "Alice Uwase")
	assert.Contains(t, out, "Incoming Money")
}

func TestRenderer_Controls(t *testing.T) {
	r := newRenderer()

	assert.Equal(t, "", r.Controls(nil))
	assert.Equal(t, "Previous [1] 2 3 4 5 ... 10 Next", r.Controls(paging.Controls(1, 10)))
}

func TestRenderer_Charts(t *testing.T) {
	aggs := []domain.CategoryAggregate{
		{Category: "Incoming Money", Count: 4, TotalAmount: decimal.NewFromInt(8000), AvgAmount: decimal.NewFromInt(2000)},
		{Category: "", Count: 1, TotalAmount: decimal.NewFromInt(10), AvgAmount: decimal.NewFromInt(10)},
	}

	out := newRenderer().Charts(service.ChartView{Aggregates: aggs, Chart: aggregate.Chart(aggs)})

	assert.Contains(t, out, "Transactions by category")
	assert.Contains(t, out, strings.Repeat("█", 30)+" 4")
	assert.Contains(t, out, "(uncategorized)")
	assert.Contains(t, out, "total 8,000  avg 2,000")

	empty := newRenderer().Charts(service.ChartView{})
	assert.Contains(t, empty, "No transactions found")
}

func TestRenderer_Error(t *testing.T) {
	r := newRenderer()

	assert.Equal(t, "Error: unsupported export format: pdf",
		r.Error(fmt.Errorf("%w: pdf", domain.ErrUnsupportedFormat)))
	assert.Contains(t, r.Error(domain.ErrNotLoaded), "Type 'refresh' to try again")
	assert.NotContains(t, r.Error(errors.New("boom")), "refresh")
}

func TestRenderer_Report(t *testing.T) {
	doc := domain.ReportDocument{
		Meta: domain.ReportMeta{Title: "MTN Transaction Report", ReportID: "report-1"},
		Summary: domain.ReportSummary{
			TotalTransactions: 2,
			TotalAmount:       domain.AmountFrom(6250),
			StartDate:         "2024-05-02",
			EndDate:           "2024-05-10",
		},
	}

	out := newRenderer().Report(service.Artifact{Document: doc}, "out/mtn-report-2024-05-11.json")

	assert.Contains(t, out, "report-1")
	assert.Contains(t, out, "2 transactions, 6,250 RWF, 2024-05-02 to 2024-05-10")
	assert.Contains(t, out, "out/mtn-report-2024-05-11.json")
}
