package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const (
	transactionsPath = "/api/transactions"
	summaryPath      = "/api/summary"
)

// HTTPSource implements the DataSource interface against the transactions API
type HTTPSource struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPSource creates a new HTTPSource. A nil client gets one with timeout.
func NewHTTPSource(baseURL string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// FetchTransactions implements the DataSource interface
func (s *HTTPSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	if err := s.getJSON(ctx, transactionsPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchSummary implements the DataSource interface
func (s *HTTPSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	var summary domain.Summary
	if err := s.getJSON(ctx, summaryPath, &summary); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: error creating request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrFetchFailed, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s returned status %d: %s",
			domain.ErrFetchFailed, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: error decoding %s: %v", domain.ErrFetchFailed, path, err)
	}

	return nil
}
