package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// Defaults for the Revolut account mapping. Revolut CSV exports carry no
// account number, so it is derived from the configured IBAN prefix plus the
// currency token in the file name.
const (
	DefaultRevolutAccount = "LT443250037740989361"
	DefaultRevolutCard    = "9448"
)

// Engine turns extracted statement text into registered transactions.
type Engine struct {
	logger         *log.Logger
	cardOwners     map[string]string
	revolutAccount string
	revolutCard    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCardOwners overrides the card identifier to owner lookup table.
func WithCardOwners(owners map[string]string) Option {
	return func(e *Engine) {
		if len(owners) > 0 {
			e.cardOwners = owners
		}
	}
}

// WithRevolutAccount overrides the synthetic Revolut account number prefix
// and the card identifier assigned to Revolut card payments.
func WithRevolutAccount(account, card string) Option {
	return func(e *Engine) {
		if account != "" {
			e.revolutAccount = account
		}
		if card != "" {
			e.revolutCard = card
		}
	}
}

// New returns an engine logging through the given logger.
func New(logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:         logger,
		cardOwners:     models.DefaultCardOwners(),
		revolutAccount: DefaultRevolutAccount,
		revolutCard:    DefaultRevolutCard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// kindRule builds one transaction from the page lines anchored at the
// marker line index.
type kindRule func(e *Engine, lines []string, i int, st *models.Statement) (*models.Transaction, error)

var csRules = map[models.Kind]kindRule{
	models.KindIncomingPayment:         csIncomingPayment,
	models.KindOutgoingPayment:         csOutgoingPayment,
	models.KindOutgoingPaymentPeriodic: csOutgoingPaymentPeriodic,
	models.KindCardPaymentDebit:        csCardPaymentDebit,
	models.KindCardPaymentIncoming:     csCardPaymentIncoming,
	models.KindCardAtmCashOut:          csCardAtmCashOut,
	models.KindCardAtmDeposit:          csCardAtmDeposit,
	models.KindBankPayedService:        csBankPayedService,
	models.KindInterestPositive:        csInterestPositive,
	models.KindTaxInterest:             csTaxInterest,
	models.KindDirectDebit:             csDirectDebit,
}

var csobRules = map[models.Kind]kindRule{
	models.KindIncomingPayment:           csobIncomingPayment,
	models.KindOutgoingPayment:           csobOutgoingPayment,
	models.KindOutgoingPaymentPeriodic:   csobOutgoingPaymentPeriodic,
	models.KindCardPaymentDebit:          csobCardPaymentDebit,
	models.KindCardPaymentIncoming:       csobCardPaymentIncoming,
	models.KindBankPayedService:          csobBankPayedService,
	models.KindInterestPositive:          csobInterestPositive,
	models.KindElectronicBankingTransfer: csobElectronicBankingTransfer,
	models.KindDirectDebit:               csobDirectDebit,
}

func rulesFor(bank models.Bank) map[models.Kind]kindRule {
	switch bank {
	case models.BankCS:
		return csRules
	case models.BankCSOB:
		return csobRules
	default:
		return nil
	}
}

// ParsePDF extracts statement metadata and transactions from the text of
// PDF pages. New transactions are registered in reg and linked to the
// returned statement. An unrecognized bank yields a statement with empty
// metadata and no transactions; the caller decides how loudly to complain.
func (e *Engine) ParsePDF(filePath string, pages []string, reg *models.Registry) (*models.Statement, error) {
	pageLines := make([][]string, len(pages))
	for i, page := range pages {
		pageLines[i] = strings.Split(page, "\n")
	}

	st := models.NewStatement(filePath)
	st.Bank = detectBank(pageLines)
	if st.Bank == "" {
		return st, nil
	}
	st.AccountNumber = scanAccountNumber(pageLines)
	st.Year = scanYear(pageLines)
	st.OpeningBalance = scanOpeningBalance(pageLines, st.Bank)
	st.ClosingBalance = scanClosingBalance(pageLines, st.Bank)

	rules := rulesFor(st.Bank)
	for _, lines := range pageLines {
		if err := e.parsePage(lines, rules, st, reg); err != nil {
			return st, err
		}
	}
	return st, nil
}

// parsePage runs the marker state machine over one page. A marker line
// opens a transaction block, a section-end sentinel closes it, and any
// other non-empty line feeds the open transaction's raw text.
func (e *Engine) parsePage(lines []string, rules map[models.Kind]kindRule, st *models.Statement, reg *models.Registry) error {
	accumulating := false
	for i, line := range lines {
		if kind, ok := markerKind(line, st.Bank); ok {
			rule := rules[kind]
			if rule == nil {
				continue
			}
			tx, err := rule(e, lines, i, st)
			if err != nil {
				return err
			}
			tx.ParentStatement = st.FilePath
			reg.Add(tx)
			st.Append(tx)
			accumulating = true
			continue
		}
		if isSectionEnd(line) {
			accumulating = false
			continue
		}
		if accumulating && line != "" {
			st.Transactions[len(st.Transactions)-1].AppendRawLine(line)
		}
	}
	return nil
}

// newStatementTx returns a transaction of the given kind prefilled with the
// fields every extracted transaction shares.
func newStatementTx(kind models.Kind, st *models.Statement) *models.Transaction {
	tx := models.NewTransaction(kind)
	tx.StatementAccount = st.AccountNumber
	tx.Year = st.Year
	return tx
}
