package ingest

import "github.com/tirasundara/momo-dashboard/internal/domain"

// Summarize derives the dashboard counters for sources that have no
// precomputed summary. Every record counts towards Total; the other counters
// follow the group of the rule named by the record's category.
func Summarize(records []domain.Record, rules *RuleSet) domain.Summary {
	s := domain.Summary{Total: len(records)}

	for _, rec := range records {
		rule, ok := rules.Lookup(rec.Category.Value)
		if !ok || !rec.Category.Valid {
			continue
		}

		switch rule.Group {
		case GroupIncoming:
			s.Incomings++
		case GroupPayment:
			s.Payments++
		case GroupDeposit:
			s.Deposits++
		}
	}

	return s
}
