// Package service orchestrates the extraction pipeline: statement
// discovery, parsing, categorization, reconciliation and export.
package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledgerline/statement-extractor/internal/config"
	"github.com/ledgerline/statement-extractor/internal/extractor"
	"github.com/ledgerline/statement-extractor/internal/models"
	"github.com/ledgerline/statement-extractor/internal/parser"
	"github.com/ledgerline/statement-extractor/internal/rules"
	"github.com/ledgerline/statement-extractor/internal/writer"
)

// Processor runs the extraction pipeline over statement files.
type Processor struct {
	logger *log.Logger
	cfg    *config.Config
	engine *parser.Engine
	rules  []rules.Rule
}

// New builds a processor from the given configuration. The rules file is
// loaded eagerly so a broken file fails the run before any parsing.
func New(logger *log.Logger, cfg *config.Config) (*Processor, error) {
	p := &Processor{
		logger: logger,
		cfg:    cfg,
		engine: parser.New(logger,
			parser.WithCardOwners(cfg.CardOwners),
			parser.WithRevolutAccount(cfg.RevolutAccount, cfg.RevolutCard)),
	}
	if cfg.RulesFile != "" {
		loaded, err := rules.Load(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		p.rules = loaded
		logger.Info("loaded categorization rules", "count", len(loaded), "file", cfg.RulesFile)
	}
	return p, nil
}

// Run walks root for statement files, extracts their transactions on top
// of the persisted history, and writes the JSON and CSV exports. One
// file's failure is logged and the batch continues.
func (p *Processor) Run(root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("input path: %w", err)
	}

	reg := models.NewRegistry()
	if err := writer.LoadJSON(p.jsonPath(), reg, p.logger); err != nil {
		return err
	}
	loaded := reg.Len()
	if loaded > 0 {
		p.logger.Info("loaded transaction history", "count", loaded)
	}

	var statements []*models.Statement
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		st, err := p.parseFile(path, reg)
		if err != nil {
			p.logger.Error("statement failed, skipping", "file", path, "err", err)
			return nil
		}
		if st != nil {
			statements = append(statements, st)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walk %s: %w", root, walkErr)
	}

	for _, st := range statements {
		p.reconcile(st)
	}
	p.categorize(reg)

	if err := reg.SortChronologically(); err != nil {
		return err
	}
	reg.Renumber()

	if err := writer.WriteJSON(p.jsonPath(), reg); err != nil {
		return err
	}
	if err := writer.WriteCSV(p.csvPath(), reg); err != nil {
		return err
	}
	p.logger.Info("export complete",
		"transactions", reg.Len(), "new", reg.Len()-loaded,
		"json", p.jsonPath(), "csv", p.csvPath())
	return nil
}

// Reexport reloads the persisted history and rewrites both export files,
// reapplying the ordering and the categorization rules.
func (p *Processor) Reexport() error {
	reg := models.NewRegistry()
	if err := writer.LoadJSON(p.jsonPath(), reg, p.logger); err != nil {
		return err
	}
	p.categorize(reg)
	if err := reg.SortChronologically(); err != nil {
		return err
	}
	reg.Renumber()
	if err := writer.WriteJSON(p.jsonPath(), reg); err != nil {
		return err
	}
	return writer.WriteCSV(p.csvPath(), reg)
}

// ConvertFile parses one statement file in isolation, without touching the
// persisted history, and returns its statement with ordered transactions.
func (p *Processor) ConvertFile(path string) (*models.Statement, error) {
	reg := models.NewRegistry()
	st, err := p.parseFile(path, reg)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	p.categorize(reg)
	if err := reg.SortChronologically(); err != nil {
		return nil, err
	}
	reg.Renumber()
	return st, nil
}

// parseFile dispatches on the file extension. Unsupported files yield a
// nil statement. Transactions are parsed into a scratch registry first so
// a mid-file failure never leaves partial results in reg.
func (p *Processor) parseFile(path string, reg *models.Registry) (*models.Statement, error) {
	scratch := models.NewRegistry()
	var (
		st  *models.Statement
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		var pages []string
		pages, err = extractor.ExtractPDFText(path)
		if err != nil {
			return nil, err
		}
		st, err = p.engine.ParsePDF(path, pages, scratch)
	case ".csv":
		var rows []map[string]string
		rows, err = extractor.ExtractCSVRows(path)
		if err != nil {
			return nil, err
		}
		st, err = p.engine.ParseRevolutCSV(path, rows, scratch)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if st.Bank == "" {
		p.logger.Warn("no bank markers recognized", "file", path)
		return st, nil
	}
	for _, tx := range scratch.All() {
		tx.ID = 0
		if sign := tx.Kind.ExpectedSign(); (sign > 0 && tx.Amount.IsNegative()) ||
			(sign < 0 && tx.Amount.IsPositive()) {
			p.logger.Warn("amount sign does not match transaction type",
				"file", path, "type", tx.Kind, "amount", tx.Amount)
		}
		reg.Add(tx)
	}
	p.logger.Info("statement parsed",
		"file", path, "bank", st.Bank, "transactions", len(st.Transactions))
	return st, nil
}

// categorize applies the user rules to transactions that have no
// description or category yet, so reloaded history is not rewritten.
func (p *Processor) categorize(reg *models.Registry) {
	if len(p.rules) == 0 {
		return
	}
	for _, tx := range reg.All() {
		if tx.UserDescription == "" && tx.UserCategory == "" {
			rules.Apply(p.rules, tx)
		}
	}
}

// reconcile checks the statement balance delta against the extracted sum
// and logs the verdict. A mismatch is a warning, never an error: it means
// some movements were not extracted.
func (p *Processor) reconcile(st *models.Statement) {
	missing, ok := st.Reconcile()
	if !ok {
		p.logger.Warn("reconciliation skipped, balances unknown", "file", st.FilePath)
		return
	}
	if !missing.IsZero() {
		p.logger.Warn("statement does not reconcile",
			"file", st.FilePath, "missing", missing.StringFixed(2))
		return
	}
	p.logger.Info("statement reconciles", "file", st.FilePath)
}

func (p *Processor) jsonPath() string {
	return filepath.Join(p.cfg.OutputDir, "transactions.json")
}

func (p *Processor) csvPath() string {
	return filepath.Join(p.cfg.OutputDir, "transactions.csv")
}
