package view

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tirasundara/momo-dashboard/internal/domain"
	"github.com/tirasundara/momo-dashboard/internal/paging"
	"github.com/tirasundara/momo-dashboard/internal/service"
)

const (
	emptyMessage = "No transactions found matching your filters"
	barWidth     = 30
)

var tableHeaders = []string{"Date & Time", "Type", "Category", "Recipient/Sender", "Amount (RWF)", "Details"}

// Renderer turns service views into terminal text. Colors are only emitted
// when the output is a terminal.
type Renderer struct {
	title     lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	highlight lipgloss.Style
	active    lipgloss.Style
	muted     lipgloss.Style
	errStyle  lipgloss.Style
	bar       lipgloss.Style
	border    lipgloss.Style
}

func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)

	return &Renderer{
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9900")),
		header:    r.NewStyle().Bold(true).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
		highlight: r.NewStyle().Background(lipgloss.Color("#ffcc00")).Foreground(lipgloss.Color("#000000")),
		active:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		errStyle:  r.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		bar:       r.NewStyle().Foreground(lipgloss.Color("#ff9900")),
		border:    r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
	}
}

// Summary renders the four dashboard counters
func (r *Renderer) Summary(s domain.Summary) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		r.counter("Total", s.Total),
		r.counter("Incoming", s.Incomings),
		r.counter("Payments", s.Payments),
		r.counter("Deposits", s.Deposits),
	)
}

func (r *Renderer) counter(label string, n int) string {
	return r.muted.Render(label+":") + " " + r.title.Render(fmt.Sprint(n))
}

// List renders the transaction table for one page and the page controls.
// After a failed refresh only the error and its retry hint are shown.
func (r *Renderer) List(v service.ListView) string {
	if v.RefreshErr != nil {
		return r.Error(v.RefreshErr) + "\n"
	}

	var b strings.Builder
	b.WriteString(r.Summary(v.Summary))
	b.WriteString("\n\n")

	if v.Empty() {
		b.WriteString(r.muted.Render(emptyMessage))
		b.WriteString("\n")
		return b.String()
	}

	term := strings.TrimSpace(v.Criteria.Search)
	mark := func(s string) string { return r.highlight.Render(s) }

	rows := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		rec := row.Record
		rows = append(rows, []string{
			FormatDateTime(rec.SMSDate, rec.SMSTime),
			rec.Type,
			Highlight(rec.Category.Value, term, mark),
			Highlight(row.Recipient, term, mark),
			FormatAmount(rec.Amount.Decimal),
			Highlight(Truncate(rec.SMSBody.Value, PreviewLength), term, mark),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		}).
		Headers(tableHeaders...).
		Rows(rows...)

	b.WriteString(t.String())
	b.WriteString("\n")

	if controls := r.Controls(v.Controls); controls != "" {
		b.WriteString(controls)
		b.WriteString("\n")
	}

	b.WriteString(r.muted.Render(fmt.Sprintf("Page %d of %d (%d transactions)",
		v.Page.Number, v.Page.TotalPages, v.Page.TotalItems)))
	b.WriteString("\n")

	return b.String()
}

// Controls renders the pagination bar. Disabled buttons are dimmed and the
// current page is shown in brackets.
func (r *Renderer) Controls(controls []paging.Control) string {
	if len(controls) == 0 {
		return ""
	}

	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		label := c.Label()
		switch {
		case c.Disabled:
			parts = append(parts, r.muted.Render(label))
		case c.Active:
			parts = append(parts, r.active.Render("["+label+"]"))
		default:
			parts = append(parts, label)
		}
	}

	return strings.Join(parts, " ")
}

// Charts renders the transaction count per category as horizontal bars,
// followed by the amount totals and averages.
func (r *Renderer) Charts(v service.ChartView) string {
	if v.Empty() {
		return r.muted.Render(emptyMessage) + "\n"
	}

	data := v.Chart
	labelWidth := 0
	maxCount := 0
	for i, label := range data.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(displayCategory(label)))
		maxCount = max(maxCount, data.Counts[i])
	}

	var b strings.Builder
	b.WriteString(r.title.Render("Transactions by category"))
	b.WriteString("\n")

	for i, label := range data.Labels {
		n := data.Counts[i] * barWidth / maxCount
		if n == 0 && data.Counts[i] > 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%-*s %s %d\n", labelWidth, displayCategory(label),
			r.bar.Render(strings.Repeat("█", n)), data.Counts[i])
	}

	b.WriteString("\n")
	b.WriteString(r.title.Render("Amount by category (RWF)"))
	b.WriteString("\n")

	for i, label := range data.Labels {
		fmt.Fprintf(&b, "%-*s total %s  avg %s\n", labelWidth, displayCategory(label),
			FormatAmount(data.Totals[i]), FormatAmount(data.Averages[i].Round(2)))
	}

	return b.String()
}

// Report renders a short description of an exported report
func (r *Renderer) Report(a service.Artifact, location string) string {
	doc := a.Document

	return fmt.Sprintf("%s\n%s %s\n%s %d transactions, %s RWF, %s to %s\n%s %s\n",
		r.title.Render(doc.Meta.Title),
		r.muted.Render("Report:"), doc.Meta.ReportID,
		r.muted.Render("Contains:"), doc.Summary.TotalTransactions,
		FormatAmount(doc.Summary.TotalAmount.Decimal), doc.Summary.StartDate, doc.Summary.EndDate,
		r.muted.Render("Saved to:"), location,
	)
}

// Error renders a failure. Load failures carry the retry hint.
func (r *Renderer) Error(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if errors.Is(err, domain.ErrFetchFailed) || errors.Is(err, domain.ErrNotLoaded) {
		msg = fmt.Sprintf("Failed to load data: %v. Type 'refresh' to try again.", err)
	}
	return r.errStyle.Render(msg)
}

func displayCategory(category string) string {
	if category == "" {
		return "(uncategorized)"
	}
	return category
}
