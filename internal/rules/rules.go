// Package rules implements user-defined categorization rules applied to
// extracted transactions. Rules live in a YAML file; the first rule a
// transaction passes assigns its description and category.
package rules

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// Condition compares one transaction attribute against a value.
type Condition struct {
	Attribute  string `yaml:"attribute"`
	Comparison string `yaml:"comparison"`
	Value      string `yaml:"value"`
}

// Rule assigns a description and category to transactions that pass all of
// the All conditions and, when Any is non-empty, at least one of those.
type Rule struct {
	All         []Condition `yaml:"all"`
	Any         []Condition `yaml:"any"`
	Description string      `yaml:"description"`
	Category    string      `yaml:"category"`
}

var allowedComparisons = map[string]bool{
	"less":      true,
	"greater":   true,
	"equal":     true,
	"not equal": true,
	"is in":     true,
	"not in":    true,
}

// Load reads and validates a YAML rules file.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var loaded []Rule
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	for ri, rule := range loaded {
		for _, cond := range append(append([]Condition{}, rule.All...), rule.Any...) {
			if !allowedComparisons[cond.Comparison] {
				return nil, fmt.Errorf("rule %d: invalid comparison %q", ri, cond.Comparison)
			}
		}
	}
	return loaded, nil
}

// Apply assigns the description and category of the first passing rule.
func Apply(loaded []Rule, tx *models.Transaction) {
	for _, rule := range loaded {
		if rule.Passes(tx) {
			tx.UserDescription += rule.Description
			tx.UserCategory += rule.Category
			return
		}
	}
}

// Passes checks the transaction against this rule. A rule with no
// conditions at all never passes.
func (r Rule) Passes(tx *models.Transaction) bool {
	if len(r.All) == 0 && len(r.Any) == 0 {
		return false
	}
	for _, cond := range r.All {
		if !cond.passes(tx) {
			return false
		}
	}
	if len(r.Any) > 0 {
		for _, cond := range r.Any {
			if cond.passes(tx) {
				return true
			}
		}
		return false
	}
	return true
}

func (c Condition) passes(tx *models.Transaction) bool {
	value, ok := attributeValue(tx, c.Attribute)
	if !ok {
		return false
	}
	switch c.Comparison {
	case "less", "greater":
		left, errL := decimal.NewFromString(value)
		right, errR := decimal.NewFromString(c.Value)
		if errL != nil || errR != nil {
			return false
		}
		if c.Comparison == "less" {
			return left.LessThan(right)
		}
		return left.GreaterThan(right)
	case "equal":
		return value == c.Value
	case "not equal":
		return value != c.Value
	case "is in":
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Value))
	case "not in":
		return !strings.Contains(value, c.Value)
	default:
		return false
	}
}

// attributeValue renders the named transaction attribute as text for
// comparison. Unknown attribute names fail every condition.
func attributeValue(tx *models.Transaction, attribute string) (string, bool) {
	switch attribute {
	case "type":
		return string(tx.Kind), true
	case "transaction_id":
		return strconv.Itoa(tx.ID), true
	case "statement_account":
		return tx.StatementAccount, true
	case "account_from":
		return tx.AccountFrom, true
	case "account_to":
		return tx.AccountTo, true
	case "amount":
		return tx.Amount.String(), true
	case "date_booked":
		return tx.DateBooked, true
	case "currency":
		return tx.Currency, true
	case "account_from_name":
		return tx.AccountFromName, true
	case "sender_note":
		return tx.SenderNote, true
	case "variable_symbol":
		return strconv.FormatInt(tx.VariableSymbol, 10), true
	case "constant_symbol":
		return strconv.FormatInt(tx.ConstantSymbol, 10), true
	case "specific_symbol":
		return strconv.FormatInt(tx.SpecificSymbol, 10), true
	case "all_transaction_lines_text":
		return tx.RawText, true
	case "user_description":
		return tx.UserDescription, true
	case "user_category":
		return tx.UserCategory, true
	case "card_owner":
		return tx.CardOwner, true
	case "vendor_text":
		return tx.VendorText, true
	case "service_type":
		return tx.ServiceType, true
	default:
		return "", false
	}
}
