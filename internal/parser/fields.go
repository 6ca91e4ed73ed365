package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// bookingDate reads the booking date from the marker line, falling back to
// the preceding line. ČSOB prints the day and month only ("12.03."), so the
// fallback appends the statement year there.
func bookingDate(lines []string, i int, bank models.Bank, year int) string {
	if date := ContainsDate(lines[i]); date != "" {
		return date
	}
	if i == 0 {
		return ""
	}
	prev := strings.TrimSpace(lines[i-1])
	if bank == models.BankCSOB && year != 0 {
		return prev + strconv.Itoa(year)
	}
	return prev
}

// amountNear finds and parses the first amount line at or after index from.
func amountNear(lines []string, from int) (decimal.Decimal, error) {
	line, rel := FindAmountLine(lines, from)
	if rel < 0 {
		return decimal.Zero, &FormatError{Field: "amount", Text: "(no amount line)"}
	}
	return ParseAmount(strings.TrimSpace(line))
}

// accountLineNear finds the first account number line at or after index from.
func accountLineNear(lines []string, from int) (string, int, error) {
	line, rel := FindAccountNumberLine(lines, from)
	if rel < 0 {
		return "", -1, &FormatError{Field: "account number", Text: "(no account number line)"}
	}
	return line, rel, nil
}

// trimmedAt bounds-checks a positional read and trims the line.
func trimmedAt(lines []string, idx int) (string, error) {
	line, err := lineAt(lines, idx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// symbolAt reads a payment symbol (variable, constant or specific) printed
// as a bare integer on its own line.
func symbolAt(lines []string, idx int, field string) (int64, error) {
	text, err := trimmedAt(lines, idx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &FormatError{Field: field, Text: text, Err: err}
	}
	return n, nil
}

// csCardLine splits a ČS card line like "123456XXXXXX7148  01.03.d.tran."
// into the card identifier (first token, mask stripped) and the transaction
// date (last token, "d.tran." suffix stripped).
func csCardLine(lines []string, idx int) (cardID, txDate string, err error) {
	text, err := trimmedAt(lines, idx)
	if err != nil {
		return "", "", err
	}
	tokens := strings.Split(text, " ")
	cardID = strings.ReplaceAll(tokens[0], "X", "")
	txDate = strings.ReplaceAll(tokens[len(tokens)-1], "d.tran.", "")
	return cardID, txDate, nil
}

// csobAccountAndAmount locates the counterparty account number line and
// reads the amount two lines above it, the fixed ČSOB layout for transfer
// blocks.
func csobAccountAndAmount(lines []string, i int) (string, decimal.Decimal, error) {
	account, rel, err := accountLineNear(lines, i)
	if err != nil {
		return "", decimal.Zero, err
	}
	amountLine, err := lineAt(lines, i+rel-2)
	if err != nil {
		return "", decimal.Zero, err
	}
	amount, err := ParseAmount(strings.TrimSpace(amountLine))
	if err != nil {
		return "", decimal.Zero, err
	}
	return account, amount, nil
}

// lastFour returns the final four characters of s, or s itself when shorter.
func lastFour(s string) string {
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}
