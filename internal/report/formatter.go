package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const fileDateFormat = "2006-01-02"

// OutputFormatter defines the interface for serializing report documents
type OutputFormatter interface {
	Format(doc domain.ReportDocument) ([]byte, error)
	FileExtension() string
	ContentType() string
	FileName(date time.Time) string
}

// NewFormatter returns the formatter registered for name
func NewFormatter(name string) (OutputFormatter, error) {
	switch name {
	case "json":
		return NewJSONFormatter(true), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
}

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(doc domain.ReportDocument) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}

func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

func (f *JSONFormatter) FileName(date time.Time) string {
	return fmt.Sprintf("mtn-report-%s.%s", date.Format(fileDateFormat), f.FileExtension())
}
