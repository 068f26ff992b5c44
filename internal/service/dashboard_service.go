package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tirasundara/momo-dashboard/internal/aggregate"
	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/extractor"
	"github.com/tirasundara/momo-dashboard/internal/logging"
	"github.com/tirasundara/momo-dashboard/internal/paging"
	"github.com/tirasundara/momo-dashboard/internal/query"
	"github.com/tirasundara/momo-dashboard/internal/report"
)

// Row is one table line: a record and the recipient found in its body
type Row struct {
	Record    domain.Record
	Recipient string
}

// ListView is everything the transaction table shows for the current page
type ListView struct {
	Rows     []Row
	Page     paging.Page
	Controls []paging.Control
	Summary  domain.Summary
	Criteria domain.Criteria
	LoadedAt time.Time

	// RefreshErr is set when the last refresh failed and the rows are stale
	RefreshErr error
}

// Empty reports whether no record matched the active filters
func (v ListView) Empty() bool {
	return v.Page.IsEmpty()
}

// ChartView holds the per-category statistics of the filtered records
type ChartView struct {
	Aggregates []domain.CategoryAggregate
	Chart      aggregate.ChartData
	Criteria   domain.Criteria
}

func (v ChartView) Empty() bool {
	return len(v.Aggregates) == 0
}

// Artifact is an exported report ready to be handed to a sink
type Artifact struct {
	Data        []byte
	ContentType string
	FileName    string
	Document    domain.ReportDocument
}

// DashboardService orchestrates loading, filtering, paging and reporting
type DashboardService struct {
	source    domain.DataSource
	state     *State
	table     *query.Engine
	charts    *query.Engine
	extractor domain.RecipientExtractor
	builder   *report.Builder
	pageSize  int
	logger    *logrus.Logger
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService. A nil extractor or
// builder selects the defaults; a non-positive page size uses
// paging.DefaultPageSize.
func NewDashboardService(
	source domain.DataSource,
	recipients domain.RecipientExtractor,
	builder *report.Builder,
	pageSize int,
	logger *logrus.Logger,
) *DashboardService {
	if recipients == nil {
		recipients = extractor.NewExtractor()
	}
	if builder == nil {
		builder = report.NewBuilder()
	}
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &DashboardService{
		source:    source,
		state:     NewState(),
		table:     query.NewEngine(domain.AmountExact),
		charts:    query.NewEngine(domain.AmountThreshold),
		extractor: recipients,
		builder:   builder,
		pageSize:  pageSize,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *DashboardService) State() *State {
	return s.state
}

// Refresh fetches transactions and the summary in parallel. Both must succeed;
// otherwise the previous data stays in place and the error is recorded.
func (s *DashboardService) Refresh(ctx context.Context) error {
	logData := logging.NewLogData(s.logger)
	stopTimer := logData.AddTiming("refresh_ms")

	var (
		records []domain.Record
		summary domain.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.source.FetchTransactions(gctx)
		if err != nil {
			return fmt.Errorf("fetching transactions: %w", err)
		}
		records = r
		return nil
	})
	g.Go(func() error {
		sum, err := s.source.FetchSummary(gctx)
		if err != nil {
			return fmt.Errorf("fetching summary: %w", err)
		}
		summary = sum
		return nil
	})

	err := g.Wait()
	stopTimer()

	if err != nil {
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		s.state.Fail(err)

		logData.AddData("error", err.Error())
		logData.Log().Error("Dashboard refresh failed")
		return err
	}

	if records == nil {
		records = []domain.Record{}
	}
	snap := s.state.Replace(records, summary, s.now())

	logData.AddData("records", len(records))
	logData.AddData("version", snap.Version)
	logData.Log().Info("Dashboard data refreshed")

	return nil
}

// Watch refreshes every interval until ctx is done. Failed refreshes are
// recorded in the state and do not stop the loop.
func (s *DashboardService) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// SetCriteria replaces the active filters and returns to the first page
func (s *DashboardService) SetCriteria(c domain.Criteria) {
	s.state.SetCriteria(c)
}

// UpdateCriteria edits the active filters and returns to the first page
func (s *DashboardService) UpdateCriteria(fn func(*domain.Criteria)) domain.Criteria {
	return s.state.UpdateCriteria(fn)
}

// GoToPage jumps to page, clamped to the pages of the current result set
func (s *DashboardService) GoToPage(page int) (int, error) {
	total, err := s.totalPages()
	if err != nil {
		return 0, err
	}
	return s.state.SetPage(page, total), nil
}

func (s *DashboardService) NextPage() (int, error) {
	total, err := s.totalPages()
	if err != nil {
		return 0, err
	}
	return s.state.MovePage(1, total), nil
}

func (s *DashboardService) PrevPage() (int, error) {
	total, err := s.totalPages()
	if err != nil {
		return 0, err
	}
	return s.state.MovePage(-1, total), nil
}

func (s *DashboardService) totalPages() (int, error) {
	cur, err := s.state.Current()
	if err != nil {
		return 0, err
	}
	filtered := s.table.Query(cur.Snapshot.Records, cur.Criteria)
	return paging.TotalPages(len(filtered), s.pageSize), nil
}

// List filters the loaded records with exact amount matching and returns the
// current page with recipients and page controls.
func (s *DashboardService) List() (ListView, error) {
	cur, err := s.state.Current()
	if err != nil {
		return ListView{}, err
	}

	filtered := s.table.Query(cur.Snapshot.Records, cur.Criteria)
	page := paging.Paginate(filtered, cur.Page, s.pageSize)

	rows := make([]Row, 0, len(page.Items))
	for _, rec := range page.Items {
		rows = append(rows, Row{
			Record:    rec,
			Recipient: s.extractor.Extract(rec.SMSBody.Value),
		})
	}

	return ListView{
		Rows:       rows,
		Page:       page,
		Controls:   paging.Controls(page.Number, page.TotalPages),
		Summary:    cur.Snapshot.Summary,
		Criteria:   cur.Criteria,
		LoadedAt:   cur.Snapshot.LoadedAt,
		RefreshErr: cur.Err,
	}, nil
}

// Summary returns the counters of the loaded snapshot
func (s *DashboardService) Summary() (domain.Summary, error) {
	cur, err := s.state.Current()
	if err != nil {
		return domain.Summary{}, err
	}
	return cur.Snapshot.Summary, nil
}

// Charts aggregates the records matching the active filters, with the amount
// filter read as a minimum, and keeps the most frequent categories.
func (s *DashboardService) Charts() (ChartView, error) {
	cur, err := s.state.Current()
	if err != nil {
		return ChartView{}, err
	}

	filtered := s.charts.Query(cur.Snapshot.Records, cur.Criteria)
	top := aggregate.TopByCount(aggregate.Aggregate(filtered), aggregate.ChartTopN)

	return ChartView{
		Aggregates: top,
		Chart:      aggregate.Chart(top),
		Criteria:   cur.Criteria,
	}, nil
}

// Report builds a report over the records matching the active filters, with
// the amount filter read as a minimum.
func (s *DashboardService) Report(now time.Time) (domain.ReportDocument, error) {
	cur, err := s.state.Current()
	if err != nil {
		return domain.ReportDocument{}, err
	}

	filtered := s.charts.Query(cur.Snapshot.Records, cur.Criteria)
	return s.builder.Build(filtered, cur.Criteria, now), nil
}

// Export renders the current report in format ("json" or "csv")
func (s *DashboardService) Export(format string, now time.Time) (Artifact, error) {
	formatter, err := report.NewFormatter(format)
	if err != nil {
		return Artifact{}, err
	}

	logData := logging.NewLogData(s.logger)
	stopTimer := logData.AddTiming("export_ms")

	doc, err := s.Report(now)
	if err != nil {
		return Artifact{}, err
	}

	data, err := formatter.Format(doc)
	stopTimer()
	if err != nil {
		return Artifact{}, fmt.Errorf("formatting %s report: %w", format, err)
	}

	artifact := Artifact{
		Data:        data,
		ContentType: formatter.ContentType(),
		FileName:    formatter.FileName(now),
		Document:    doc,
	}

	logData.AddData("format", format)
	logData.AddData("transactions", doc.Summary.TotalTransactions)
	logData.AddData("file", artifact.FileName)
	logData.Log().Info("Report exported")

	return artifact, nil
}
