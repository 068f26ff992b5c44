package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

// FileSource implements the DataSource interface over saved API responses
type FileSource struct {
	TransactionsPath string
	SummaryPath      string
}

// NewFileSource creates a new FileSource
func NewFileSource(transactionsPath, summaryPath string) *FileSource {
	return &FileSource{
		TransactionsPath: transactionsPath,
		SummaryPath:      summaryPath,
	}
}

// FetchTransactions implements the DataSource interface
func (s *FileSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	if err := readJSONFile(ctx, s.TransactionsPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchSummary implements the DataSource interface
func (s *FileSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	var summary domain.Summary
	if err := readJSONFile(ctx, s.SummaryPath, &summary); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func readJSONFile(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", domain.ErrFetchFailed, path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", domain.ErrFetchFailed, path, err)
	}

	return nil
}
