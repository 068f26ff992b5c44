package domain

import "context"

// DataSource defines the interface for loading dashboard data
type DataSource interface {
	// FetchTransactions returns every record, most recent first
	FetchTransactions(ctx context.Context) ([]Record, error)

	// FetchSummary returns the dashboard counters
	FetchSummary(ctx context.Context) (Summary, error)
}
