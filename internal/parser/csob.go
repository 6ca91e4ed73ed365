package parser

import (
	"strings"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// ČSOB statements locate the counterparty account with a dddd/dddd scan and
// print the amount two lines above it; card blocks use fixed offsets.

func csobIncomingPayment(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindIncomingPayment, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountTo = st.AccountNumber

	from, amount, err := csobAccountAndAmount(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountFrom = from
	tx.Amount = amount
	return tx, nil
}

func csobOutgoingPayment(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindOutgoingPayment, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber

	to, amount, err := csobAccountAndAmount(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	tx.Amount = amount
	return tx, nil
}

func csobOutgoingPaymentPeriodic(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindOutgoingPaymentPeriodic, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber

	to, amount, err := csobAccountAndAmount(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	tx.Amount = amount
	return tx, nil
}

// csobCardBlock fills the symbol, card and vendor fields shared by the two
// ČSOB card payment layouts.
func csobCardBlock(e *Engine, lines []string, i int, tx *models.Transaction) error {
	var err error
	if tx.VariableSymbol, err = symbolAt(lines, i+4, "variable symbol"); err != nil {
		return err
	}
	if tx.ConstantSymbol, err = symbolAt(lines, i+5, "constant symbol"); err != nil {
		return err
	}
	if tx.SpecificSymbol, err = symbolAt(lines, i+6, "specific symbol"); err != nil {
		return err
	}
	cardLine, err := trimmedAt(lines, i+6)
	if err != nil {
		return err
	}
	tx.CardIdentifier = lastFour(cardLine)
	dateLine, err := trimmedAt(lines, i+8)
	if err != nil {
		return err
	}
	tokens := strings.Split(dateLine, " ")
	tx.PaymentDate = tokens[len(tokens)-1]
	vendor, err := trimmedAt(lines, i+7)
	if err != nil {
		return err
	}
	vendorTail, err := trimmedAt(lines, i+9)
	if err != nil {
		return err
	}
	tx.VendorText = vendor + vendorTail
	tx.CardOwner = models.CardOwnerLabel(e.cardOwners, tx.CardIdentifier)
	return nil
}

func csobCardPaymentDebit(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardPaymentDebit, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber

	var err error
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	if err := csobCardBlock(e, lines, i, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func csobCardPaymentIncoming(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindCardPaymentIncoming, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountTo = st.AccountNumber

	amountLine, err := trimmedAt(lines, i+2)
	if err != nil {
		return nil, err
	}
	if tx.Amount, err = ParseAmount(amountLine); err != nil {
		return nil, err
	}
	if err := csobCardBlock(e, lines, i, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// csobServiceType classifies the charged service from the marker line
// itself; ČSOB prints the fee name inline.
func csobServiceType(line string) string {
	serviceType := "\n"
	if strings.Contains(line, "Poplatek") {
		serviceType += "Poplatek"
		if strings.Contains(line, "platební karta") {
			serviceType += " - platební karta"
		}
		serviceType += "\n"
	}
	return serviceType
}

func csobBankPayedService(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindBankPayedService, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber
	tx.ServiceType = csobServiceType(lines[i])

	var err error
	if tx.Amount, err = amountNear(lines, i); err != nil {
		return nil, err
	}
	return tx, nil
}

func csobInterestPositive(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindInterestPositive, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber
	tx.AccountTo = st.AccountNumber

	amountLine, err := trimmedAt(lines, i+2)
	if err != nil {
		return nil, err
	}
	if tx.Amount, err = ParseAmount(amountLine); err != nil {
		return nil, err
	}
	return tx, nil
}

func csobElectronicBankingTransfer(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindElectronicBankingTransfer, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)

	counterparty, amount, err := csobAccountAndAmount(lines, i)
	if err != nil {
		return nil, err
	}
	tx.Amount = amount
	// The amount sign decides the transfer direction.
	if amount.IsNegative() {
		tx.AccountFrom = st.AccountNumber
		tx.AccountTo = counterparty
	} else {
		tx.AccountFrom = counterparty
		tx.AccountTo = st.AccountNumber
	}
	return tx, nil
}

func csobDirectDebit(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error) {
	tx := newStatementTx(models.KindDirectDebit, st)
	tx.DateBooked = bookingDate(lines, i, models.BankCSOB, st.Year)
	tx.AccountFrom = st.AccountNumber

	to, amount, err := csobAccountAndAmount(lines, i)
	if err != nil {
		return nil, err
	}
	tx.AccountTo = to
	tx.Amount = amount
	return tx, nil
}
