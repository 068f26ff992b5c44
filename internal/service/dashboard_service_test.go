package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/paging"
	"github.com/tirasundara/momo-dashboard/internal/report"
	"github.com/tirasundara/momo-dashboard/internal/service"
)

type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) FetchTransactions(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.Record)
	return records, args.Error(1)
}

func (m *MockDataSource) FetchSummary(ctx context.Context) (domain.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func record(category, body, date string, amount any) domain.Record {
	return domain.Record{
		Category: domain.NewText(category),
		SMSBody:  domain.NewText(body),
		SMSDate:  date,
		Amount:   domain.AmountFrom(amount),
	}
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		record("Incoming Money", "You have received 1,500 RWF from Alice", "2024-05-10", 1500),
		record("Transfers to Mobile Numbers", "1,000 RWF transferred to 0788123456", "2024-05-09", 1000),
		record("Incoming Money", "You have received 2,000 RWF", "2024-05-08", 2000),
		record("Bank Deposits", "A bank deposit of 40000 RWF", "2024-05-07", 40000),
		record("Incoming Money", "You have received 1,500.004 RWF", "2024-05-06", "1500.004"),
	}
}

var sampleSummary = domain.Summary{Total: 5, Incomings: 3, Payments: 1, Deposits: 1}

func newLoadedService(t *testing.T, pageSize int) (*service.DashboardService, *MockDataSource) {
	t.Helper()

	src := new(MockDataSource)
	src.On("FetchTransactions", mock.Anything).Return(sampleRecords(), nil).Once()
	src.On("FetchSummary", mock.Anything).Return(sampleSummary, nil).Once()

	builder := report.NewBuilderWithIDs(func() string { return "report-1" })
	svc := service.NewDashboardService(src, nil, builder, pageSize, quietLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	return svc, src
}

// -- Refresh tests --

func TestRefresh_Success(t *testing.T) {
	svc, src := newLoadedService(t, 0)
	src.AssertExpectations(t)

	view, err := svc.List()
	require.NoError(t, err)

	assert.Equal(t, sampleSummary, view.Summary)
	assert.Len(t, view.Rows, 5)
	assert.Nil(t, view.Controls, "single page has no controls")
	assert.NoError(t, view.RefreshErr)
}

func TestRefresh_FailureBeforeFirstLoad(t *testing.T) {
	src := new(MockDataSource)
	src.On("FetchTransactions", mock.Anything).Return(nil, errors.New("connection refused"))
	src.On("FetchSummary", mock.Anything).Return(domain.Summary{}, nil).Maybe()

	svc := service.NewDashboardService(src, nil, nil, 10, quietLogger())

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	assert.Contains(t, err.Error(), "connection refused")

	_, err = svc.List()
	assert.True(t, errors.Is(err, domain.ErrNotLoaded))
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	svc, src := newLoadedService(t, 2)

	_, err := svc.NextPage()
	require.NoError(t, err)

	src.On("FetchTransactions", mock.Anything).Return(sampleRecords()[:1], nil).Maybe()
	src.On("FetchSummary", mock.Anything).Return(domain.Summary{}, domain.ErrFetchFailed)

	err = svc.Refresh(context.Background())
	require.Error(t, err)

	view, err := svc.List()
	require.NoError(t, err)

	if view.Page.TotalItems != 5 {
		t.Errorf("Expected previous 5 records to survive, got %d", view.Page.TotalItems)
	}
	assert.Equal(t, 2, view.Page.Number, "page is kept on a failed refresh")
	assert.True(t, errors.Is(view.RefreshErr, domain.ErrFetchFailed))
}

func TestRefresh_ResetsPageAndClearsError(t *testing.T) {
	svc, src := newLoadedService(t, 2)

	_, err := svc.GoToPage(3)
	require.NoError(t, err)

	src.On("FetchTransactions", mock.Anything).Return(sampleRecords(), nil).Once()
	src.On("FetchSummary", mock.Anything).Return(sampleSummary, nil).Once()
	require.NoError(t, svc.Refresh(context.Background()))

	view, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page.Number)
	assert.NoError(t, view.RefreshErr)
}

func TestWatch(t *testing.T) {
	src := new(MockDataSource)
	src.On("FetchTransactions", mock.Anything).Return(sampleRecords(), nil)
	src.On("FetchSummary", mock.Anything).Return(sampleSummary, nil)

	svc := service.NewDashboardService(src, nil, nil, 10, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := svc.Watch(ctx, 20*time.Millisecond)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	_, err = svc.Summary()
	assert.NoError(t, err, "at least one tick refreshed the data")

	assert.Error(t, svc.Watch(context.Background(), 0))
}

// -- List tests --

func TestList_ExactAmountAndRecipients(t *testing.T) {
	svc, _ := newLoadedService(t, 10)

	svc.SetCriteria(domain.Criteria{Amount: "1500"})

	view, err := svc.List()
	require.NoError(t, err)

	// 1500 and 1500.004 are within the tolerance
	if len(view.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(view.Rows))
	}
	assert.Equal(t, "Alice", view.Rows[0].Recipient)
	assert.Equal(t, "N/A", view.Rows[1].Recipient)
}

func TestList_Paging(t *testing.T) {
	svc, _ := newLoadedService(t, 2)

	view, err := svc.List()
	require.NoError(t, err)

	assert.Equal(t, 3, view.Page.TotalPages)
	require.NotEmpty(t, view.Controls)
	assert.Equal(t, paging.Prev, view.Controls[0].Kind)
	assert.True(t, view.Controls[0].Disabled)

	page, err := svc.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	page, _ = svc.GoToPage(99)
	assert.Equal(t, 3, page)

	page, _ = svc.NextPage()
	assert.Equal(t, 3, page, "next on the last page stays put")

	view, _ = svc.List()
	assert.Len(t, view.Rows, 1)
	assert.Equal(t, "2024-05-06", view.Rows[0].Record.SMSDate)

	page, _ = svc.PrevPage()
	assert.Equal(t, 2, page)
}

func TestList_CriteriaResetsPage(t *testing.T) {
	svc, _ := newLoadedService(t, 2)

	_, err := svc.GoToPage(2)
	require.NoError(t, err)

	c := svc.UpdateCriteria(func(c *domain.Criteria) { c.Type = "Incoming Money" })
	assert.Equal(t, "Incoming Money", c.Type)

	view, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, 1, view.Page.Number)
	assert.Equal(t, 3, view.Page.TotalItems)
}

func TestList_Empty(t *testing.T) {
	svc, _ := newLoadedService(t, 10)

	svc.SetCriteria(domain.Criteria{Search: "nothing matches this"})

	view, err := svc.List()
	require.NoError(t, err)
	assert.True(t, view.Empty())
	assert.Empty(t, view.Rows)
	assert.Nil(t, view.Controls)
}

func TestQueriesBeforeLoad(t *testing.T) {
	svc := service.NewDashboardService(new(MockDataSource), nil, nil, 10, quietLogger())

	_, err := svc.List()
	assert.True(t, errors.Is(err, domain.ErrNotLoaded))

	_, err = svc.Charts()
	assert.True(t, errors.Is(err, domain.ErrNotLoaded))

	_, err = svc.NextPage()
	assert.True(t, errors.Is(err, domain.ErrNotLoaded))

	_, err = svc.Export("json", time.Now())
	assert.True(t, errors.Is(err, domain.ErrNotLoaded))
}

// -- Charts tests --

func TestCharts_ThresholdAmount(t *testing.T) {
	svc, _ := newLoadedService(t, 10)

	svc.SetCriteria(domain.Criteria{Amount: "1500"})

	view, err := svc.Charts()
	require.NoError(t, err)

	// amounts >= 1500: three incoming and the deposit
	require.Len(t, view.Aggregates, 2)
	assert.Equal(t, "Incoming Money", view.Aggregates[0].Category)
	assert.Equal(t, 3, view.Aggregates[0].Count)
	assert.Equal(t, "Bank Deposits", view.Aggregates[1].Category)

	assert.Equal(t, []string{"Incoming Money", "Bank Deposits"}, view.Chart.Labels)
	assert.False(t, view.Empty())
}

// -- Report / Export tests --

func TestReport(t *testing.T) {
	svc, _ := newLoadedService(t, 10)
	svc.SetCriteria(domain.Criteria{Type: "Incoming Money"})

	now := time.Date(2024, 5, 11, 9, 30, 0, 0, time.UTC)
	doc, err := svc.Report(now)
	require.NoError(t, err)

	assert.Equal(t, "report-1", doc.Meta.ReportID)
	assert.Equal(t, 3, doc.Summary.TotalTransactions)
	assert.True(t, doc.Summary.TotalAmount.Equal(decimal.RequireFromString("5000.004")))
	assert.Equal(t, "2024-05-06", doc.Summary.StartDate)
	assert.Equal(t, "2024-05-10", doc.Summary.EndDate)
}

func TestExport(t *testing.T) {
	svc, _ := newLoadedService(t, 10)
	now := time.Date(2024, 5, 11, 9, 30, 0, 0, time.UTC)

	artifact, err := svc.Export("json", now)
	require.NoError(t, err)
	assert.Equal(t, "application/json", artifact.ContentType)
	assert.Equal(t, "mtn-report-2024-05-11.json", artifact.FileName)

	var doc domain.ReportDocument
	require.NoError(t, json.Unmarshal(artifact.Data, &doc))
	assert.Equal(t, 5, doc.Summary.TotalTransactions)

	artifact, err = svc.Export("csv", now)
	require.NoError(t, err)
	assert.Equal(t, "MTN_Transactions_2024-05-11.csv", artifact.FileName)
	assert.Equal(t, 6, strings.Count(string(artifact.Data), "\n"))

	_, err = svc.Export("pdf", now)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}
