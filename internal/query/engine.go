// Package query filters transaction records against user criteria.
package query

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tirasundara/momo-dashboard/internal/amount"
	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const defaultTolerance = 0.01

// Engine applies Criteria to record sets. The zero value is not usable; build
// one with NewEngine.
type Engine struct {
	Mode      domain.AmountMode
	Tolerance decimal.Decimal
}

// NewEngine creates an Engine for mode with the default 0.01 tolerance
func NewEngine(mode domain.AmountMode) *Engine {
	return &Engine{
		Mode:      mode,
		Tolerance: decimal.NewFromFloat(defaultTolerance),
	}
}

// Query returns the records that satisfy every criterion, in input order.
// The input slice is never modified.
func (e *Engine) Query(records []domain.Record, c domain.Criteria) []domain.Record {
	p := e.compile(c)

	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if p.matches(rec) {
			out = append(out, rec)
		}
	}

	return out
}

// predicate holds criteria parsed once per query
type predicate struct {
	search string
	typ    string

	mode      domain.AmountMode
	amount    decimal.Decimal
	hasAmount bool
	tolerance decimal.Decimal
}

func (e *Engine) compile(c domain.Criteria) predicate {
	p := predicate{
		search:    strings.ToLower(strings.TrimSpace(c.Search)),
		typ:       c.Type,
		mode:      e.Mode,
		tolerance: e.Tolerance,
	}

	switch e.Mode {
	case domain.AmountThreshold:
		p.amount = amount.ParseThreshold(c.Amount)
		p.hasAmount = !p.amount.IsZero()
	default:
		p.mode = domain.AmountExact
		p.amount, p.hasAmount = amount.ParseCurrency(strings.TrimSpace(c.Amount))
	}

	return p
}

func (p predicate) matches(rec domain.Record) bool {
	return p.matchSearch(rec) && p.matchType(rec) && p.matchAmount(rec)
}

func (p predicate) matchSearch(rec domain.Record) bool {
	if p.search == "" {
		return true
	}

	if rec.SMSBody.Valid && strings.Contains(strings.ToLower(rec.SMSBody.Value), p.search) {
		return true
	}

	return rec.Category.Valid && strings.Contains(strings.ToLower(rec.Category.Value), p.search)
}

// matchType compares the filter against the category, not the Type badge.
func (p predicate) matchType(rec domain.Record) bool {
	if p.typ == "" {
		return true
	}

	return rec.Category.Valid && rec.Category.Value == p.typ
}

func (p predicate) matchAmount(rec domain.Record) bool {
	if !p.hasAmount {
		return true
	}

	if p.mode == domain.AmountThreshold {
		return rec.Amount.GreaterThanOrEqual(p.amount)
	}

	return rec.Amount.Sub(p.amount).Abs().LessThan(p.tolerance)
}
