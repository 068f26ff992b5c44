package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const (
	// Title is embedded in every report's metadata
	Title = "MTN Transaction Report"

	notAvailable = "N/A"
)

// Builder assembles report documents from already filtered records
type Builder struct {
	newID func() string
}

// NewBuilder creates a Builder that stamps reports with random UUIDs
func NewBuilder() *Builder {
	return &Builder{
		newID: uuid.NewString,
	}
}

// NewBuilderWithIDs creates a Builder with a custom report id generator
func NewBuilderWithIDs(newID func() string) *Builder {
	return &Builder{
		newID: newID,
	}
}

// Build summarizes records into a self-describing report. The date range is
// read from the ends of records, which callers must supply most recent first;
// no sorting happens here.
func (b *Builder) Build(records []domain.Record, c domain.Criteria, generatedAt time.Time) domain.ReportDocument {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount.Decimal)
	}

	summary := domain.ReportSummary{
		TotalTransactions: len(records),
		TotalAmount:       domain.NewAmount(total),
		StartDate:         notAvailable,
		EndDate:           notAvailable,
	}
	if len(records) > 0 {
		summary.StartDate = records[len(records)-1].SMSDate
		summary.EndDate = records[0].SMSDate
	}

	transactions := make([]domain.Record, len(records))
	copy(transactions, records)

	return domain.ReportDocument{
		Meta: domain.ReportMeta{
			Title:       Title,
			ReportID:    b.newID(),
			GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
			Filters: domain.Criteria{
				Search: strings.TrimSpace(c.Search),
				Type:   c.Type,
				Amount: strings.TrimSpace(c.Amount),
			},
		},
		Summary:      summary,
		Transactions: transactions,
	}
}
