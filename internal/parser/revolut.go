package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// revolutRules maps the CSV Type column plus the amount sign to a
// transaction kind. Checked in order, first match wins.
var revolutRules = []struct {
	kind     models.Kind
	types    []string
	negative bool
}{
	{models.KindOutgoingPayment, []string{"transfer", "exchange"}, true},
	{models.KindIncomingPayment, []string{"transfer", "exchange", "topup"}, false},
	{models.KindCardPaymentDebit, []string{"card_payment"}, true},
	{models.KindCardPaymentIncoming, []string{"card_payment"}, false},
	{models.KindBankPayedService, []string{"fee"}, true},
	{models.KindCardAtmCashOut, []string{"atm"}, true},
}

var revolutCurrencies = []string{"CZK", "USD", "EUR"}

// ParseRevolutCSV turns rows of a Revolut account export into registered
// transactions. Rows whose State is not "Completed" are skipped, and a row
// with a non-zero fee additionally yields a synthetic bank service charge.
func (e *Engine) ParseRevolutCSV(filePath string, rows []map[string]string, reg *models.Registry) (*models.Statement, error) {
	st := models.NewStatement(filePath)
	st.Bank = models.BankRevolut
	st.AccountNumber = e.revolutAccountNumber(filePath)
	st.Year = revolutYear(filePath)
	e.revolutBalances(st, rows)

	for _, row := range rows {
		if !strings.EqualFold(row["State"], "completed") {
			continue
		}
		amount, err := decimal.NewFromString(row["Amount"])
		if err != nil {
			return st, &FormatError{Field: "amount", Text: row["Amount"], Err: err}
		}
		amount = amount.Round(2)
		date, ok := e.revolutBookingDate(row)
		if !ok {
			e.logger.Warn("revolut row has no usable booking date, skipping",
				"file", filePath, "type", row["Type"], "amount", row["Amount"])
			continue
		}

		for _, rule := range revolutRules {
			if !containsString(rule.types, strings.ToLower(row["Type"])) {
				continue
			}
			if rule.negative != amount.IsNegative() {
				continue
			}
			tx := e.newRevolutTx(rule.kind, st, row, amount, date)
			reg.Add(tx)
			st.Append(tx)

			if fee := revolutFee(row); fee.IsPositive() {
				feeTx := e.newRevolutTx(models.KindBankPayedService, st, row, fee.Neg(), date)
				feeTx.ServiceType = "transaction fee"
				reg.Add(feeTx)
				st.Append(feeTx)
			}
			break
		}
	}
	return st, nil
}

// newRevolutTx builds one transaction of the given kind from a CSV row.
func (e *Engine) newRevolutTx(kind models.Kind, st *models.Statement, row map[string]string, amount decimal.Decimal, date string) *models.Transaction {
	tx := models.NewTransaction(kind)
	tx.StatementAccount = st.AccountNumber
	tx.ParentStatement = st.FilePath
	tx.Year = st.Year
	tx.Amount = amount
	tx.DateBooked = date
	tx.RawText = row["Description"]
	if currency := row["Currency"]; currency != "" {
		tx.Currency = currency
	}

	switch kind {
	case models.KindIncomingPayment, models.KindCardPaymentIncoming:
		tx.AccountTo = st.AccountNumber
	default:
		tx.AccountFrom = st.AccountNumber
	}
	if kind == models.KindCardPaymentDebit {
		tx.CardIdentifier = e.revolutCard
		tx.CardOwner = models.CardOwnerLabel(e.cardOwners, e.revolutCard)
		if ts := row["Started Date"]; ts != "" {
			if started, err := ConvertRevolutTimestamp(ts); err == nil {
				tx.PaymentDate = started
			}
		}
	}
	return tx
}

// revolutBookingDate converts the completion timestamp into a booking date,
// falling back to the start timestamp when the row never completed one.
func (e *Engine) revolutBookingDate(row map[string]string) (string, bool) {
	for _, key := range []string{"Completed Date", "Started Date"} {
		ts := row[key]
		if ts == "" {
			continue
		}
		date, err := ConvertRevolutTimestamp(ts)
		if err != nil {
			e.logger.Warn("unparseable revolut timestamp", "field", key, "value", ts)
			continue
		}
		return date, true
	}
	return "", false
}

// revolutBalances derives the period balances from the first and last rows:
// the export carries a running balance, so the opening balance is the first
// row's balance minus its amount.
func (e *Engine) revolutBalances(st *models.Statement, rows []map[string]string) {
	if len(rows) == 0 {
		return
	}
	first, last := rows[0], rows[len(rows)-1]

	balance, errB := decimal.NewFromString(first["Balance"])
	amount, errA := decimal.NewFromString(first["Amount"])
	if errB == nil && errA == nil {
		st.OpeningBalance = decimal.NewNullDecimal(balance.Sub(amount).Round(2))
	} else {
		e.logger.Warn("cannot derive opening balance", "file", st.FilePath)
	}

	closing, err := decimal.NewFromString(last["Balance"])
	if err != nil {
		e.logger.Warn("cannot derive closing balance", "file", st.FilePath)
		return
	}
	st.ClosingBalance = decimal.NewNullDecimal(closing.Round(2))
}

// revolutFee parses the Fee column, treating an empty cell as zero.
func revolutFee(row map[string]string) decimal.Decimal {
	text := strings.TrimSpace(row["Fee"])
	if text == "" {
		return decimal.Zero
	}
	fee, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return fee.Round(2)
}

// revolutAccountNumber derives a stable account number from the configured
// IBAN prefix and the currency token in the file name.
func (e *Engine) revolutAccountNumber(filePath string) string {
	upper := strings.ToUpper(filePath)
	for _, currency := range revolutCurrencies {
		if strings.Contains(upper, currency) {
			return e.revolutAccount + currency
		}
	}
	return ""
}

// revolutYear reads the statement year from the two digits right before the
// file extension ("czk23.csv" is 2023).
func revolutYear(filePath string) int {
	base := strings.TrimSuffix(filePath, filepath.Ext(filePath))
	if len(base) < 2 {
		return 0
	}
	year, err := strconv.Atoi("20" + base[len(base)-2:])
	if err != nil {
		return 0
	}
	return year
}

func containsString(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
