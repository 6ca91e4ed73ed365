package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func balancedStatement(opening, closing string) *Statement {
	st := NewStatement("statement.pdf")
	st.OpeningBalance = decimal.NewNullDecimal(decimal.RequireFromString(opening))
	st.ClosingBalance = decimal.NewNullDecimal(decimal.RequireFromString(closing))
	return st
}

func amountTx(kind Kind, amount string) *Transaction {
	tx := NewTransaction(kind)
	tx.Amount = decimal.RequireFromString(amount)
	return tx
}

func TestReconcileBalanced(t *testing.T) {
	st := balancedStatement("1000.00", "1500.00")
	st.Append(amountTx(KindIncomingPayment, "700.00"))
	st.Append(amountTx(KindOutgoingPayment, "-200.00"))

	missing, ok := st.Reconcile()
	if !ok {
		t.Fatal("expected reconcilable statement")
	}
	if !missing.IsZero() {
		t.Errorf("missing: got %s, want 0", missing)
	}
}

func TestReconcileReportsMissingAmount(t *testing.T) {
	st := balancedStatement("1000.00", "1500.00")
	st.Append(amountTx(KindIncomingPayment, "480.00"))

	missing, ok := st.Reconcile()
	if !ok {
		t.Fatal("expected reconcilable statement")
	}
	if missing.StringFixed(2) != "20.00" {
		t.Errorf("missing: got %s, want 20.00", missing.StringFixed(2))
	}
}

func TestReconcileNeedsBothBalances(t *testing.T) {
	st := NewStatement("statement.pdf")
	st.ClosingBalance = decimal.NewNullDecimal(decimal.RequireFromString("100"))

	if _, ok := st.Reconcile(); ok {
		t.Error("expected reconciliation to be unavailable without an opening balance")
	}
}

func TestExpectedSign(t *testing.T) {
	if KindIncomingPayment.ExpectedSign() != 1 {
		t.Error("incoming payments should be positive")
	}
	if KindCardPaymentDebit.ExpectedSign() != -1 {
		t.Error("card debits should be negative")
	}
	// Electronic banking transfers decide polarity at parse time.
	if KindElectronicBankingTransfer.ExpectedSign() != 0 {
		t.Error("electronic banking transfers carry either sign")
	}
}

func TestCardOwnerLabel(t *testing.T) {
	owners := DefaultCardOwners()
	if got := CardOwnerLabel(owners, "7148"); got != "Ondra, ČS, VISA" {
		t.Errorf("got %q", got)
	}
	if got := CardOwnerLabel(owners, "0000"); got != "Unknown card" {
		t.Errorf("got %q", got)
	}
}

func TestAppendRawLine(t *testing.T) {
	tx := NewTransaction(KindIncomingPayment)
	tx.AppendRawLine("  first line  ")
	tx.AppendRawLine("second")

	if tx.RawText != "first line\nsecond\n" {
		t.Errorf("raw text: got %q", tx.RawText)
	}
}
