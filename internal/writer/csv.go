package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/statement-extractor/internal/models"
)

// utf8BOM makes spreadsheet applications detect the encoding correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"Transaction ID",
	"Transaction account",
	"Date Booked",
	"Type",
	"Account From",
	"Account To",
	"Amount",
	"Currency",
	"Category",
	"Description",
	"Transaction data",
}

// WriteCSV saves all registered transactions as a semicolon-delimited CSV
// with a UTF-8 BOM, the format Czech spreadsheet locales expect.
func WriteCSV(path string, reg *models.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range reg.All() {
		if err := w.Write(csvRecord(tx)); err != nil {
			f.Close()
			return fmt.Errorf("write transaction %d: %w", tx.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func csvRecord(tx *models.Transaction) []string {
	date := tx.DateBooked
	if when, err := time.Parse("02.01.2006", tx.DateBooked); err == nil {
		date = when.Format("2006-01-02")
	}

	kind := string(tx.Kind)
	if tx.Kind == models.KindBankPayedService {
		if serviceType := strings.ReplaceAll(tx.ServiceType, "\n", ""); serviceType != "" {
			kind += " - " + serviceType
		}
	}

	return []string{
		strconv.Itoa(tx.ID),
		tx.StatementAccount,
		date,
		kind,
		tx.AccountFrom,
		tx.AccountTo,
		strings.ReplaceAll(tx.Amount.StringFixed(2), ".", ","),
		tx.Currency,
		tx.UserCategory,
		tx.UserDescription,
		tx.RawText,
	}
}
