package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const (
	selectTransactions = `
		SELECT transaction_id, category, sms_body, sms_date, sms_time, amount, type
		FROM transactions
		ORDER BY sms_date DESC, sms_time DESC`

	selectSummary = `
		SELECT total, incomings, payments, deposits
		FROM summary
		WHERE id = 1`
)

// SQLiteSource implements the DataSource interface over a database produced
// by the SMS import pipeline. The database is opened read-only.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the database at dbPath
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FetchTransactions implements the DataSource interface
func (s *SQLiteSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectTransactions)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", domain.ErrFetchFailed, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var (
			txID, category, body, typ sql.NullString
			date, clock, amt          any
		)
		if err := rows.Scan(&txID, &category, &body, &date, &clock, &amt, &typ); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", domain.ErrFetchFailed, err)
		}

		records = append(records, domain.Record{
			TransactionID: txID.String,
			Category:      domain.Text{Value: category.String, Valid: category.Valid},
			SMSBody:       domain.Text{Value: body.String, Valid: body.Valid},
			SMSDate:       columnString(date, "2006-01-02"),
			SMSTime:       columnString(clock, "15:04:05"),
			Amount:        domain.AmountFrom(columnValue(amt)),
			Type:          typ.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", domain.ErrFetchFailed, err)
	}

	return records, nil
}

// FetchSummary implements the DataSource interface. A missing summary row
// reads as all zeros.
func (s *SQLiteSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	var total, incomings, payments, deposits sql.NullInt64

	err := s.db.QueryRowContext(ctx, selectSummary).Scan(&total, &incomings, &payments, &deposits)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Summary{}, nil
	}
	if err != nil {
		return domain.Summary{}, fmt.Errorf("%w: query summary: %v", domain.ErrFetchFailed, err)
	}

	return domain.Summary{
		Total:     int(total.Int64),
		Incomings: int(incomings.Int64),
		Payments:  int(payments.Int64),
		Deposits:  int(deposits.Int64),
	}, nil
}

// columnString renders a date or time column that the driver may hand back
// as text, bytes or a parsed time.
func columnString(v any, layout string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(layout)
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func columnValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
