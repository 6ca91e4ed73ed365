package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/statement-extractor/internal/models"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeRules(t, `
- all:
    - attribute: type
      comparison: equal
      value: CardPaymentDebit
  any:
    - attribute: vendor_text
      comparison: is in
      value: albert
    - attribute: vendor_text
      comparison: is in
      value: billa
  description: groceries
  category: food
`)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d rules, want 1", len(loaded))
	}
	if len(loaded[0].All) != 1 || len(loaded[0].Any) != 2 {
		t.Errorf("conditions: got %d all, %d any", len(loaded[0].All), len(loaded[0].Any))
	}
}

func TestLoadRejectsUnknownComparison(t *testing.T) {
	path := writeRules(t, `
- all:
    - attribute: amount
      comparison: roughly
      value: "100"
  category: odd
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid comparison")
	}
	if !strings.Contains(err.Error(), "invalid comparison") {
		t.Errorf("error: got %v", err)
	}
}

func TestApplyFirstMatchWins(t *testing.T) {
	loaded := []Rule{
		{
			All:         []Condition{{Attribute: "type", Comparison: "equal", Value: "CardPaymentDebit"}},
			Description: "card spend",
			Category:    "cards",
		},
		{
			All:         []Condition{{Attribute: "amount", Comparison: "less", Value: "0"}},
			Description: "any spend",
			Category:    "misc",
		},
	}

	tx := models.NewTransaction(models.KindCardPaymentDebit)
	tx.Amount = decimal.RequireFromString("-250.00")
	Apply(loaded, tx)

	if tx.UserDescription != "card spend" || tx.UserCategory != "cards" {
		t.Errorf("got description %q, category %q", tx.UserDescription, tx.UserCategory)
	}
}

func TestConditionComparisons(t *testing.T) {
	tx := models.NewTransaction(models.KindCardPaymentDebit)
	tx.Amount = decimal.RequireFromString("-250.00")
	tx.VendorText = "ALBERT PRAHA CZ"

	tests := []struct {
		name     string
		cond     Condition
		expected bool
	}{
		{
			name:     "numeric less",
			cond:     Condition{Attribute: "amount", Comparison: "less", Value: "0"},
			expected: true,
		},
		{
			name:     "numeric greater fails",
			cond:     Condition{Attribute: "amount", Comparison: "greater", Value: "0"},
			expected: false,
		},
		{
			name:     "is in ignores case",
			cond:     Condition{Attribute: "vendor_text", Comparison: "is in", Value: "albert"},
			expected: true,
		},
		{
			name:     "not in",
			cond:     Condition{Attribute: "vendor_text", Comparison: "not in", Value: "BILLA"},
			expected: true,
		},
		{
			name:     "not equal",
			cond:     Condition{Attribute: "currency", Comparison: "not equal", Value: "EUR"},
			expected: true,
		},
		{
			name:     "unknown attribute fails",
			cond:     Condition{Attribute: "nonsense", Comparison: "equal", Value: "x"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.passes(tx); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRuleWithoutConditionsNeverPasses(t *testing.T) {
	tx := models.NewTransaction(models.KindIncomingPayment)
	if (Rule{Description: "catch all"}).Passes(tx) {
		t.Error("a rule without conditions must not pass")
	}
}
