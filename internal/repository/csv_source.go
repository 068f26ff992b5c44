package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/ingest"
	"github.com/tirasundara/momo-dashboard/pkg/fileutil"
)

var (
	csvRequiredFields = []string{"category", "sms_body", "sms_date", "amount"}
	csvOptionalFields = []string{"sms_time", "type", "transaction_id"}
)

// CSVSource implements the DataSource interface for tabular transaction dumps
type CSVSource struct {
	FilePath   string
	NumWorkers int
	BatchSize  int

	rules  *ingest.RuleSet
	logger *logrus.Logger
	cache  parseCache
}

// NewCSVSource creates a new CSVSource. Rules derive the type badge for rows
// without a type column and the summary counters; nil means the defaults.
func NewCSVSource(filePath string, rules *ingest.RuleSet, logger *logrus.Logger) *CSVSource {
	if rules == nil {
		rules = ingest.DefaultRules()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &CSVSource{
		FilePath:   filePath,
		NumWorkers: 1,
		BatchSize:  500,
		rules:      rules,
		logger:     logger,
	}
}

// FetchTransactions implements the DataSource interface. Rows keep file order.
func (s *CSVSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	return s.cache.load(s.FilePath, func() ([]domain.Record, error) {
		return s.read(ctx)
	})
}

func (s *CSVSource) read(ctx context.Context) ([]domain.Record, error) {
	if s.NumWorkers > 1 {
		return s.readConcurrently(ctx)
	}

	reader := fileutil.NewCSVReader(s.FilePath)

	columns, err := s.readColumns(reader)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	rowProcessorFn := func(row []string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rec, ok := s.parseRow(row, columns); ok {
			records = append(records, rec)
		}
		return nil
	}

	// Process data row by row
	if err := reader.ReadAndProcessByRow(rowProcessorFn); err != nil {
		return nil, fmt.Errorf("processing transactions: %w", err)
	}

	return records, nil
}

// FetchSummary implements the DataSource interface
func (s *CSVSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	records, err := s.FetchTransactions(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return ingest.Summarize(records, s.rules), nil
}

func (s *CSVSource) readColumns(reader *fileutil.CSVReader) (columnMap, error) {
	header, err := reader.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("reading transactions header: %w", err)
	}

	columns, err := createHeaderMap(header, csvRequiredFields, csvOptionalFields)
	if err != nil {
		return nil, fmt.Errorf("mapping CSV columns: %w", err)
	}

	return columns, nil
}

func (s *CSVSource) parseRow(row []string, columns columnMap) (domain.Record, bool) {
	// Skip if row doesn't have enough fields
	if len(row) <= columns.maxIndex() {
		s.logger.WithField("row", row).Warn("Skipping CSV row with missing fields")
		return domain.Record{}, false
	}

	category := columns.get(row, "category")

	typ := columns.get(row, "type")
	if typ == "" {
		typ = s.rules.TypeOf(category)
	}

	return domain.Record{
		TransactionID: columns.get(row, "transaction_id"),
		Category:      textOrNull(category),
		SMSBody:       textOrNull(columns.get(row, "sms_body")),
		SMSDate:       columns.get(row, "sms_date"),
		SMSTime:       columns.get(row, "sms_time"),
		Amount:        domain.AmountFrom(columns.get(row, "amount")),
		Type:          typ,
	}, true
}

type parsedBatch struct {
	seq     int
	records []domain.Record
}

// readConcurrently parses batches of rows on a worker pool, good for handling
// exports with a huge number of rows.
func (s *CSVSource) readConcurrently(ctx context.Context) ([]domain.Record, error) {
	reader := fileutil.NewCSVReader(s.FilePath)

	columns, err := s.readColumns(reader)
	if err != nil {
		return nil, err
	}

	type job struct {
		seq  int
		rows [][]string
	}

	jobs := make(chan job, s.NumWorkers)
	results := make(chan parsedBatch, s.NumWorkers)

	// Start the worker pool
	var wg sync.WaitGroup
	for i := 0; i < s.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobs {
				batch := parsedBatch{seq: j.seq, records: make([]domain.Record, 0, len(j.rows))}
				for _, row := range j.rows {
					if rec, ok := s.parseRow(row, columns); ok {
						batch.records = append(batch.records, rec)
					}
				}
				results <- batch
			}
		}()
	}

	// Close results once every worker is done
	go func() {
		wg.Wait()
		close(results)
	}()

	// Read and distribute batches of CSV rows to workers
	errChan := make(chan error, 1)
	go func() {
		defer close(jobs)

		errChan <- reader.ReadInBatches(s.BatchSize, func(seq int, rows [][]string) error {
			select {
			case jobs <- job{seq: seq, rows: rows}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	var batches []parsedBatch
	for batch := range results {
		batches = append(batches, batch)
	}

	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("processing transactions: %w", err)
	}

	// Restore file order
	sort.Slice(batches, func(i, j int) bool { return batches[i].seq < batches[j].seq })

	var records []domain.Record
	for _, batch := range batches {
		records = append(records, batch.records...)
	}

	return records, nil
}

func textOrNull(s string) domain.Text {
	if s == "" {
		return domain.Text{}
	}
	return domain.NewText(s)
}
