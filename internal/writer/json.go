package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/statement-extractor/internal/models"
)

func init() {
	// Amounts are plain JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// WriteJSON saves all registered transactions as an indented JSON array.
// Non-ASCII text stays unescaped so the Czech payment texts remain
// readable in the output file.
func WriteJSON(path string, reg *models.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(reg.All()); err != nil {
		f.Close()
		return fmt.Errorf("encode transactions: %w", err)
	}
	return f.Close()
}

// LoadJSON reloads previously exported transactions into the registry,
// keeping their ids. A missing file means no history yet and is not an
// error. Records with an unknown type are skipped with a warning.
func LoadJSON(path string, reg *models.Registry, logger *log.Logger) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var transactions []*models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	for _, tx := range transactions {
		if !tx.Kind.Known() {
			logger.Warn("skipping transaction with unknown type", "type", tx.Kind, "id", tx.ID)
			continue
		}
		reg.Add(tx)
	}
	return nil
}
