package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// bankIdentifiers maps header texts to the issuing bank, checked in order.
var bankIdentifiers = []struct {
	text string
	bank models.Bank
}{
	{"Československá obchodní banka, a. s.,", models.BankCSOB},
	{"Česká spořitelna, a.s.,", models.BankCS},
	{"Plus účet České spořitelny", models.BankCS},
	{"Revolut", models.BankRevolut},
}

var revolutIBANPattern = regexp.MustCompile(`^LT\d*$`)

// detectBank scans all pages for a bank identity marker.
func detectBank(pages [][]string) models.Bank {
	for _, lines := range pages {
		for _, line := range lines {
			for _, id := range bankIdentifiers {
				if strings.Contains(line, id.text) {
					return id.bank
				}
			}
		}
	}
	return ""
}

// scanAccountNumber finds the statement's own account number. Each bank
// prints it differently: ČS inline after a label, ČSOB on the line after
// the label, Revolut as a bare IBAN followed by its BIC.
func scanAccountNumber(pages [][]string) string {
	for _, lines := range pages {
		for i, line := range lines {
			if strings.Contains(line, "Číslo účtu/kód banky:") {
				return strings.TrimSpace(strings.ReplaceAll(line, "Číslo účtu/kód banky:", ""))
			}
			if strings.TrimSpace(line) == "Účet:" && i+1 < len(lines) {
				return strings.TrimSpace(lines[i+1])
			}
			if revolutIBANPattern.MatchString(strings.TrimSpace(line)) &&
				i+1 < len(lines) && strings.Contains(lines[i+1], "REVOLT21") {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// scanYear finds the statement year. The ČSOB "Období:" label stands alone
// with the period on the next line; ČS prints the period on the label line.
func scanYear(pages [][]string) int {
	for _, lines := range pages {
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "Období:":
				if i+1 < len(lines) {
					return yearSuffix(strings.TrimSpace(lines[i+1]))
				}
			case strings.Contains(trimmed, "Období:"):
				return yearSuffix(trimmed)
			case strings.Contains(line, "Transakce účtu od"):
				return yearSuffix(trimmed)
			}
		}
	}
	return 0
}

// yearSuffix parses the final four characters of a period line as a year.
func yearSuffix(text string) int {
	if len(text) < 4 {
		return 0
	}
	year, err := strconv.Atoi(text[len(text)-4:])
	if err != nil {
		return 0
	}
	return year
}

// scanOpeningBalance finds the balance at the start of the statement period.
func scanOpeningBalance(pages [][]string, bank models.Bank) decimal.NullDecimal {
	switch bank {
	case models.BankCS, models.BankCSOB:
		return balanceAfterLabel(pages, "Počáteční zůstatek:")
	case models.BankRevolut:
		// The opening balance is the first line after "Celkem" in the
		// first balance summary section.
		for _, lines := range pages {
			for i, line := range lines {
				if !strings.Contains(line, "Souhrn zůstatku") {
					continue
				}
				return revolutSummaryAmount(lines, i, 1)
			}
		}
	}
	return decimal.NullDecimal{}
}

// scanClosingBalance finds the balance at the end of the statement period.
func scanClosingBalance(pages [][]string, bank models.Bank) decimal.NullDecimal {
	switch bank {
	case models.BankCS, models.BankCSOB:
		return balanceAfterLabel(pages, "Konečný zůstatek:")
	case models.BankRevolut:
		// A statement can hold several partial summary sections; only the
		// last one covers the whole period. The closing balance is the
		// fourth line after its "Celkem" line.
		var lastLines []string
		lastIndex := -1
		for _, lines := range pages {
			for i, line := range lines {
				if strings.Contains(line, "Souhrn zůstatku") {
					lastLines, lastIndex = lines, i
				}
			}
		}
		if lastIndex >= 0 {
			return revolutSummaryAmount(lastLines, lastIndex, 4)
		}
	}
	return decimal.NullDecimal{}
}

// balanceAfterLabel reads the ČS/ČSOB balance printed on the line after the
// given label.
func balanceAfterLabel(pages [][]string, label string) decimal.NullDecimal {
	for _, lines := range pages {
		for i, line := range lines {
			if !strings.Contains(line, label) || i+1 >= len(lines) {
				continue
			}
			amount, err := ParseAmount(strings.TrimSpace(lines[i+1]))
			if err != nil {
				return decimal.NullDecimal{}
			}
			return decimal.NewNullDecimal(amount)
		}
	}
	return decimal.NullDecimal{}
}

// revolutSummaryAmount reads the balance printed offset lines after the
// "Celkem" line of a summary section starting at index from. Revolut
// amounts use comma thousands separators and a " CZK" suffix.
func revolutSummaryAmount(lines []string, from, offset int) decimal.NullDecimal {
	for o := from; o < len(lines); o++ {
		if strings.TrimSpace(lines[o]) != "Celkem" {
			continue
		}
		if o+offset >= len(lines) {
			return decimal.NullDecimal{}
		}
		text := strings.NewReplacer(" CZK", "", ",", "").Replace(lines[o+offset])
		amount, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(amount.Round(2))
	}
	return decimal.NullDecimal{}
}
