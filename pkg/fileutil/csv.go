package fileutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVReader provides a helper/utility to read CSV file(s). Rows may have a
// varying number of fields; callers decide what a short row means.
type CSVReader struct {
	FilePath string
	Comma    rune
}

// NewCSVReader returns a CSVReader instance for a specified CSV file
func NewCSVReader(fp string) *CSVReader {
	return &CSVReader{
		FilePath: fp,
		Comma:    ',',
	}
}

func (r *CSVReader) open() (*os.File, *csv.Reader, error) {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening a csv file: %w", err)
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if r.Comma != 0 {
		reader.Comma = r.Comma
	}

	return f, reader, nil
}

// ReadHeader reads ONLY the header of the specified CSV file
func (r *CSVReader) ReadHeader() ([]string, error) {
	f, reader, err := r.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	return header, nil
}

// ReadAndProcessByRow reads and processes a CSV file row by row, allows for streaming large file(s)
func (r *CSVReader) ReadAndProcessByRow(processorFn func([]string) error) error {
	return r.ReadInBatches(1, func(_ int, batch [][]string) error {
		return processorFn(batch[0])
	})
}

// ReadInBatches streams the data rows in batches of up to batchSize rows.
// processorFn receives the zero-based batch sequence number so callers that
// fan batches out can restore file order.
func (r *CSVReader) ReadInBatches(batchSize int, processorFn func(seq int, batch [][]string) error) error {
	if batchSize < 1 {
		batchSize = 1
	}

	f, reader, err := r.open()
	if err != nil {
		return err
	}
	defer f.Close()

	// Skip header
	if _, err = reader.Read(); err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}

	seq := 0
	batch := make([][]string, 0, batchSize)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break // end of file, stop
		}
		if err != nil {
			return fmt.Errorf("reading CSV row: %w", err)
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := processorFn(seq, batch); err != nil {
				return err
			}
			seq++
			batch = make([][]string, 0, batchSize)
		}
	}

	if len(batch) > 0 {
		return processorFn(seq, batch)
	}

	return nil
}
