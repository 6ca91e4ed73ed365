package parser

import (
	"strings"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// Česká spořitelna statements print one transaction block per marker line,
// with payment details on fixed line offsets below the marker.

func csIncomingPayment(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindIncomingPayment, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountTo = st.AccountNumber

	from, err := trimmedAt(lines, i+1)
	if err != nil {
		return nil, err
	}
	tx.AccountFrom = from
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csOutgoingPayment(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindOutgoingPayment, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	// Instant payments carry an extra "okamžitá" line that shifts the
	// counterparty account one line down.
	next, err := lineAt(lines, i+1)
	if err != nil {
		return nil, err
	}
	offset := 0
	if strings.Contains(next, "okamžitá") {
		offset = 1
	}
	to, err := trimmedAt(lines, i+1+offset)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csOutgoingPaymentPeriodic(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindOutgoingPaymentPeriodic, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	to, _, err := accountLineNear(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csCardPaymentDebit(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardPaymentDebit, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	var err error
	if tx.VariableSymbol, err = symbolAt(lines, i+1, "variable symbol"); err != nil {
		return nil, err
	}
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	if tx.ConstantSymbol, err = symbolAt(lines, i+3, "constant symbol"); err != nil {
		return nil, err
	}
	if tx.SpecificSymbol, err = symbolAt(lines, i+4, "specific symbol"); err != nil {
		return nil, err
	}
	if tx.CardIdentifier, tx.PaymentDate, err = csCardLine(lines, i+5); err != nil {
		return nil, err
	}
	if tx.VendorText, err = trimmedAt(lines, i+6); err != nil {
		return nil, err
	}
	tx.CardOwner = models.CardOwnerLabel(e.cardOwners, tx.CardIdentifier)
	return tx, nil
}

func csCardPaymentIncoming(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardPaymentIncoming, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountTo = st.AccountNumber

	var err error
	if tx.VariableSymbol, err = symbolAt(lines, i+1, "variable symbol"); err != nil {
		return nil, err
	}
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	if tx.ConstantSymbol, err = symbolAt(lines, i+4, "constant symbol"); err != nil {
		return nil, err
	}
	if tx.SpecificSymbol, err = symbolAt(lines, i+5, "specific symbol"); err != nil {
		return nil, err
	}
	if tx.CardIdentifier, tx.PaymentDate, err = csCardLine(lines, i+6); err != nil {
		return nil, err
	}
	if tx.VendorText, err = trimmedAt(lines, i+7); err != nil {
		return nil, err
	}
	tx.CardOwner = models.CardOwnerLabel(e.cardOwners, tx.CardIdentifier)
	return tx, nil
}

func csCardAtmCashOut(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardAtmCashOut, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	// A cash-out at another bank's ATM adds an extra identifying line that
	// shifts every following offset down by one.
	next, err := lineAt(lines, i+1)
	if err != nil {
		return nil, err
	}
	offset := 0
	tx.OurBankATM = true
	if strings.Contains(next, "jiné banky v ČR") {
		tx.OurBankATM = false
		offset = 1
	}
	if tx.VariableSymbol, err = symbolAt(lines, i+1+offset, "variable symbol"); err != nil {
		return nil, err
	}
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	if tx.ConstantSymbol, err = symbolAt(lines, i+3+offset, "constant symbol"); err != nil {
		return nil, err
	}
	if tx.SpecificSymbol, err = symbolAt(lines, i+4+offset, "specific symbol"); err != nil {
		return nil, err
	}
	if tx.CardIdentifier, tx.CashOutDate, err = csCardLine(lines, i+5+offset); err != nil {
		return nil, err
	}
	if tx.VendorText, err = trimmedAt(lines, i+6+offset); err != nil {
		return nil, err
	}
	tx.CardOwner = models.CardOwnerLabel(e.cardOwners, tx.CardIdentifier)
	return tx, nil
}

func csCardAtmDeposit(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardAtmDeposit, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber
	tx.AccountTo = st.AccountNumber
	tx.DepositDate = tx.DateBooked

	var err error
	if tx.VariableSymbol, err = symbolAt(lines, i+1, "variable symbol"); err != nil {
		return nil, err
	}
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	if tx.ConstantSymbol, err = symbolAt(lines, i+3, "constant symbol"); err != nil {
		return nil, err
	}
	return tx, nil
}

// csServiceTypes maps the known ČS service charge names to the subtype
// texts that can follow on the next line.
var csServiceTypes = []struct {
	name     string
	subtypes []string
}{
	{"Cena za výběr hotovosti z bankomatu", []string{"jiné banky v ČR"}},
	{"Cena za vedení účtu", nil},
	{"Poplatek", []string{"platební karta"}},
}

// csServiceType classifies the charged service from the line after the
// marker, appending the subtype from the line after that when one matches.
func csServiceType(lines []string, i int) string {
	next, err := lineAt(lines, i+1)
	if err != nil {
		return ""
	}
	for _, svc := range csServiceTypes {
		if !strings.Contains(next, svc.name) {
			continue
		}
		serviceType := svc.name
		if after, err := lineAt(lines, i+2); err == nil {
			for _, subtype := range svc.subtypes {
				if strings.Contains(after, subtype) {
					serviceType += " - " + subtype
					break
				}
			}
		}
		return serviceType
	}
	return ""
}

func csBankPayedService(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindBankPayedService, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber
	tx.ServiceType = csServiceType(lines, i)

	var err error
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csInterestPositive(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindInterestPositive, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber
	tx.AccountTo = st.AccountNumber

	var err error
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csTaxInterest(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindTaxInterest, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	var err error
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csDirectDebit(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindDirectDebit, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCS, st.Year)
	tx.AccountFrom = st.AccountNumber

	to, _, err := accountLineNear(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}
