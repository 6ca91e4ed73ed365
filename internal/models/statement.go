package models

import (
	"github.com/shopspring/decimal"
)

// Statement describes one processed source document and the transactions
// extracted from it.
type Statement struct {
	FilePath      string
	Bank          Bank
	AccountNumber string
	Year          int

	// Balances stay invalid when the document never states them
	// (e.g. unrecognized bank), which disables reconciliation.
	OpeningBalance decimal.NullDecimal
	ClosingBalance decimal.NullDecimal

	Transactions []*Transaction
}

// NewStatement returns a statement for the given source file.
func NewStatement(filePath string) *Statement {
	return &Statement{FilePath: filePath}
}

// Append links a transaction to this statement.
func (s *Statement) Append(t *Transaction) {
	s.Transactions = append(s.Transactions, t)
}

// Sum returns the signed total of all extracted transaction amounts.
func (s *Statement) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range s.Transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// Reconcile compares the balance delta of the statement period against the
// sum of extracted amounts. It returns the missing amount rounded to two
// places and whether the check could run at all (both balances known).
// A non-zero missing amount means some movements were not extracted.
func (s *Statement) Reconcile() (decimal.Decimal, bool) {
	if !s.OpeningBalance.Valid || !s.ClosingBalance.Valid {
		return decimal.Zero, false
	}
	delta := s.ClosingBalance.Decimal.Sub(s.OpeningBalance.Decimal)
	return delta.Sub(s.Sum()).Round(2), true
}
