package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned when no rule keyword appears in the body
const DefaultCategory = "Text to ignore"

// Summary groups a category can count towards
const (
	GroupIncoming = "incoming"
	GroupPayment  = "payment"
	GroupDeposit  = "deposit"
)

// CategoryRule maps SMS keywords to a category and its display badge
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Group    string   `yaml:"group,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is an ordered list of category rules. The first rule with a
// keyword contained in the body wins; matching is case-sensitive.
type RuleSet struct {
	Default    CategoryRule   `yaml:"default"`
	Categories []CategoryRule `yaml:"categories"`
}

// DefaultRules returns the built-in MTN MoMo category table
func DefaultRules() *RuleSet {
	return &RuleSet{
		Default: CategoryRule{Name: DefaultCategory, Type: "Other"},
		Categories: []CategoryRule{
			{Name: "Incoming Money", Type: "Incoming", Group: GroupIncoming, Keywords: []string{"received"}},
			{Name: "Payment to Code Holder", Type: "Payment", Group: GroupPayment, Keywords: []string{"payment"}},
			{Name: "Transfers to Mobile Numbers", Type: "Transfer", Group: GroupPayment, Keywords: []string{"transferred"}},
			{Name: "Bank Deposits", Type: "Deposit", Group: GroupDeposit, Keywords: []string{"deposit"}},
			{Name: "Airtime Bill Payments", Type: "Airtime", Group: GroupPayment, Keywords: []string{"Airtime"}},
			{Name: "Cash Power Bill Payments", Type: "Power", Group: GroupPayment, Keywords: []string{"Power"}},
			{Name: "Transactions Initiated by Third Parties", Type: "ThirdParty", Group: GroupPayment, Keywords: []string{"transaction"}},
			{Name: "Withdrawals from Agents", Type: "Withdrawal", Keywords: []string{"via agent"}},
			{Name: "Bank Transfers", Type: "BankTransfer", Group: GroupPayment, Keywords: []string{"bank transfer"}},
			{Name: "Internet and Voice Bundle Purchases", Type: "Bundle", Group: GroupPayment, Keywords: []string{"Bundles"}},
		},
	}
}

// LoadRules reads a YAML rule file
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: %w", err)
	}

	return ParseRules(data)
}

// ParseRules decodes and validates YAML rules. A missing default falls back
// to DefaultCategory.
func ParseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("could not parse rules: %w", err)
	}

	if rs.Default.Name == "" {
		rs.Default.Name = DefaultCategory
	}
	if rs.Default.Type == "" {
		rs.Default.Type = "Other"
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}

	return &rs, nil
}

// Validate checks every rule has a name and at least one keyword
func (rs *RuleSet) Validate() error {
	var errs []error
	for i, rule := range rs.Categories {
		if rule.Name == "" {
			errs = append(errs, fmt.Errorf("rule %d: name is required", i))
		}
		if len(rule.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("rule %d (%s): at least one keyword is required", i, rule.Name))
		}
		switch rule.Group {
		case "", GroupIncoming, GroupPayment, GroupDeposit:
		default:
			errs = append(errs, fmt.Errorf("rule %d (%s): unknown group %q", i, rule.Name, rule.Group))
		}
	}

	return errors.Join(errs...)
}

// Categorize returns the first rule with a keyword contained in body, or the
// default rule.
func (rs *RuleSet) Categorize(body string) CategoryRule {
	for _, rule := range rs.Categories {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(body, kw) {
				return rule
			}
		}
	}

	return rs.Default
}

// Lookup returns the rule named category
func (rs *RuleSet) Lookup(category string) (CategoryRule, bool) {
	for _, rule := range rs.Categories {
		if rule.Name == category {
			return rule, true
		}
	}

	if category == rs.Default.Name {
		return rs.Default, true
	}
	return CategoryRule{}, false
}

// TypeOf returns the badge for category, falling back to the default badge
func (rs *RuleSet) TypeOf(category string) string {
	if rule, ok := rs.Lookup(category); ok {
		return rule.Type
	}
	return rs.Default.Type
}
