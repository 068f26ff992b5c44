package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

var csvHeader = []string{"Date", "Type", "Amount (RWF)", "Details"}

// CSVFormatter formats the report's transactions as CSV with every field
// quoted, matching what spreadsheet imports of the export expect.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format implements the OutputFormatter interface for CSV
func (f *CSVFormatter) Format(doc domain.ReportDocument) ([]byte, error) {
	var buf bytes.Buffer

	writeRow(&buf, csvHeader)
	for _, rec := range doc.Transactions {
		writeRow(&buf, []string{
			dateColumn(rec),
			rec.Type,
			rec.Amount.String(),
			rec.SMSBody.Value,
		})
	}

	return buf.Bytes(), nil
}

func (f *CSVFormatter) FileExtension() string {
	return "csv"
}

func (f *CSVFormatter) ContentType() string {
	return "text/csv;charset=utf-8"
}

func (f *CSVFormatter) FileName(date time.Time) string {
	return fmt.Sprintf("MTN_Transactions_%s.%s", date.Format(fileDateFormat), f.FileExtension())
}

func dateColumn(rec domain.Record) string {
	if rec.SMSTime == "" {
		return rec.SMSDate
	}
	return rec.SMSDate + " " + rec.SMSTime
}

// writeRow emits one CSV line. encoding/csv only quotes fields that need it,
// so quoting is done here.
func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
