package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/ingest"
)

// SMSSource implements the DataSource interface over an SMS backup export
type SMSSource struct {
	FilePath string
	parser   *ingest.Parser
	cache    parseCache
}

// NewSMSSource creates a new SMSSource
func NewSMSSource(filePath string, parser *ingest.Parser) *SMSSource {
	return &SMSSource{
		FilePath: filePath,
		parser:   parser,
	}
}

// FetchTransactions implements the DataSource interface
func (s *SMSSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.cache.load(s.FilePath, s.read)
}

func (s *SMSSource) read() ([]domain.Record, error) {
	f, err := os.Open(s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening SMS backup: %v", domain.ErrFetchFailed, err)
	}
	defer f.Close()

	records, err := s.parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	return records, nil
}

// FetchSummary implements the DataSource interface
func (s *SMSSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	records, err := s.FetchTransactions(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return ingest.Summarize(records, s.parser.Rules()), nil
}
