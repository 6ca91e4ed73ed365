package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// dd.mm.yyyy anywhere in a line.
	datePattern = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)
	// Czech account number with bank code, dddd/dddd.
	accountNumberPattern = regexp.MustCompile(`\d{4}/\d{4}`)
)

// ParseAmount converts a statement amount like "+30 000,00" or "-1 234.56"
// into a decimal rounded to two places. Regular and non-breaking spaces are
// thousands separators; comma and dot both work as the decimal mark.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(text)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &FormatError{Field: "amount", Text: text, Err: err}
	}
	return amount.Round(2), nil
}

// ContainsDate returns the first dd.mm.yyyy date found in text, or "".
func ContainsDate(text string) string {
	return datePattern.FindString(text)
}

// FindAmountLine scans lines starting at from (inclusive) for the first line
// holding a bare amount. A line qualifies when it carries a sign (or is
// exactly "0.00") and reduces to digits once sign, separators and decimal
// marks are removed. Returns the line and its index relative to from, or
// ("", -1) when no amount line exists.
func FindAmountLine(lines []string, from int) (string, int) {
	if from < 0 || from >= len(lines) {
		return "", -1
	}
	for i, line := range lines[from:] {
		if !strings.Contains(line, "-") && !strings.Contains(line, "+") && line != "0.00" {
			continue
		}
		stripped := strings.NewReplacer(
			"+", "", "-", "", " ", "", "\u00a0", "", ".", "", ",", "",
		).Replace(line)
		if stripped != "" && isDigits(stripped) {
			return line, i
		}
	}
	return "", -1
}

// FindAccountNumberLine scans lines starting at from (inclusive) for the
// first line containing a dddd/dddd account number. Returns the trimmed line
// and its index relative to from, or ("", -1).
func FindAccountNumberLine(lines []string, from int) (string, int) {
	if from < 0 || from >= len(lines) {
		return "", -1
	}
	for i, line := range lines[from:] {
		if accountNumberPattern.MatchString(line) {
			return strings.TrimSpace(line), i
		}
	}
	return "", -1
}

// ConvertRevolutTimestamp turns a Revolut "2023-04-01 10:30:00" timestamp
// into the canonical dd.mm.yyyy booking date.
func ConvertRevolutTimestamp(ts string) (string, error) {
	when, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		return "", &FormatError{Field: "timestamp", Text: ts, Err: err}
	}
	return when.Format("02.01.2006"), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
