// Package ingest turns raw MTN MoMo SMS backups into dashboard records.
package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tirasundara/momo-dashboard/internal/domain"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = "15:04:05"
)

var (
	amountPattern = regexp.MustCompile(`([0-9]+[,.]?[0-9]*) RWF`)
	txIDPattern   = regexp.MustCompile(`TxId[:\s]+(\d+)`)
)

// SMS is one message of an SMS backup export
type SMS struct {
	Address string `xml:"address,attr"`
	Date    string `xml:"date,attr"`
	Body    string `xml:"body,attr"`
}

type smsBackup struct {
	XMLName  xml.Name `xml:"smses"`
	Messages []SMS    `xml:"sms"`
}

// Parser converts SMS messages into records
type Parser struct {
	rules    *RuleSet
	location *time.Location
	logger   *logrus.Logger
}

// NewParser creates a Parser. nil rules use DefaultRules and a nil location
// uses time.Local.
func NewParser(rules *RuleSet, location *time.Location, logger *logrus.Logger) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Parser{
		rules:    rules,
		location: location,
		logger:   logger,
	}
}

// Rules returns the rule set used for categorization
func (p *Parser) Rules() *RuleSet {
	return p.rules
}

// Parse decodes an SMS backup document and returns its transaction records,
// most recent first.
func (p *Parser) Parse(r io.Reader) ([]domain.Record, error) {
	var backup smsBackup
	if err := xml.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("error decoding SMS backup: %w", err)
	}

	return p.ParseMessages(backup.Messages), nil
}

// ParseMessages converts messages to records. Messages without a body, a
// valid timestamp or an amount are logged and skipped.
func (p *Parser) ParseMessages(messages []SMS) []domain.Record {
	records := make([]domain.Record, 0, len(messages))
	skipped := 0

	for _, msg := range messages {
		rec, ok := p.parseMessage(msg)
		if !ok {
			skipped++
			p.logger.WithField("body", msg.Body).Warn("Unprocessed SMS")
			continue
		}
		records = append(records, rec)
	}

	SortNewestFirst(records)

	p.logger.WithFields(logrus.Fields{
		"records": len(records),
		"skipped": skipped,
	}).Info("SMS backup processed")

	return records
}

func (p *Parser) parseMessage(msg SMS) (domain.Record, bool) {
	if msg.Body == "" {
		return domain.Record{}, false
	}

	date, clock, ok := p.formatTimestamp(msg.Date)
	if !ok {
		return domain.Record{}, false
	}

	amt, ok := ExtractAmount(msg.Body)
	if !ok {
		return domain.Record{}, false
	}

	rule := p.rules.Categorize(msg.Body)

	return domain.Record{
		TransactionID: ExtractTransactionID(msg.Body),
		Category:      domain.NewText(rule.Name),
		SMSBody:       domain.NewText(msg.Body),
		SMSDate:       date,
		SMSTime:       clock,
		Amount:        domain.NewAmount(amt),
		Type:          rule.Type,
	}, true
}

func (p *Parser) formatTimestamp(epochMillis string) (string, string, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(epochMillis), 10, 64)
	if err != nil {
		return "", "", false
	}

	t := time.UnixMilli(ms).In(p.location)
	return t.Format(dateFormat), t.Format(timeFormat), true
}

// ExtractAmount returns the first "<number> RWF" amount in body, with
// thousands separators removed.
func ExtractAmount(body string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(body)
	if m == nil {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.TrimSuffix(strings.ReplaceAll(m[1], ",", ""), "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ExtractTransactionID returns the TxId reference in body, or ""
func ExtractTransactionID(body string) string {
	m := txIDPattern.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return m[1]
}

// SortNewestFirst orders records by date then time, most recent first. The
// fixed-width formats make string comparison chronological.
func SortNewestFirst(records []domain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SMSDate != records[j].SMSDate {
			return records[i].SMSDate > records[j].SMSDate
		}
		return records[i].SMSTime > records[j].SMSTime
	})
}
