package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ledgerline/statement-extractor/internal/config"
	"github.com/ledgerline/statement-extractor/internal/models"
	"github.com/ledgerline/statement-extractor/internal/writer"
)

const revolutFixture = "Type,State,Started Date,Completed Date,Description,Amount,Fee,Currency,Balance\n" +
	"TOPUP,COMPLETED,2023-04-01 10:00:00,2023-04-02 08:30:00,Top up,1000.00,0.00,CZK,1000.00\n" +
	"CARD_PAYMENT,COMPLETED,2023-04-03 12:00:00,2023-04-04 09:00:00,Groceries,-120.00,0.00,CZK,880.00\n"

func testProcessor(t *testing.T, outputDir string) *Processor {
	t.Helper()
	p, err := New(log.New(io.Discard), &config.Config{OutputDir: outputDir})
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	return p
}

func TestRunExportsBatch(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inputDir, "czk23.csv"), []byte(revolutFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	p := testProcessor(t, outputDir)
	if err := p.Run(inputDir); err != nil {
		t.Fatalf("run: %v", err)
	}

	reg := models.NewRegistry()
	if err := writer.LoadJSON(filepath.Join(outputDir, "transactions.json"), reg, log.New(io.Discard)); err != nil {
		t.Fatalf("load export: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("exported %d transactions, want 2", reg.Len())
	}
	for i, tx := range reg.All() {
		if tx.ID != i+1 {
			t.Errorf("transaction %d: id %d", i, tx.ID)
		}
	}

	if _, err := os.Stat(filepath.Join(outputDir, "transactions.csv")); err != nil {
		t.Errorf("csv export missing: %v", err)
	}

	// A second run over the same input reloads the history and reparses the
	// statement, so the exported set doubles rather than resetting.
	if err := p.Run(inputDir); err != nil {
		t.Fatalf("second run: %v", err)
	}
	reg = models.NewRegistry()
	if err := writer.LoadJSON(filepath.Join(outputDir, "transactions.json"), reg, log.New(io.Discard)); err != nil {
		t.Fatalf("load export: %v", err)
	}
	if reg.Len() != 4 {
		t.Errorf("after rerun: %d transactions, want 4", reg.Len())
	}
}

func TestRunRejectsMissingRoot(t *testing.T) {
	p := testProcessor(t, t.TempDir())
	if err := p.Run(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("expected error for a missing input path")
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "czk23.csv")
	if err := os.WriteFile(path, []byte(revolutFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	p := testProcessor(t, t.TempDir())
	st, err := p.ConvertFile(path)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if st.Bank != models.BankRevolut {
		t.Errorf("bank: got %q", st.Bank)
	}
	if len(st.Transactions) != 2 {
		t.Errorf("got %d transactions, want 2", len(st.Transactions))
	}

	// Conversion must not create the batch export files.
	if _, err := os.Stat(filepath.Join(p.cfg.OutputDir, "transactions.json")); !os.IsNotExist(err) {
		t.Error("convert must not write the batch export")
	}
}

func TestConvertFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := testProcessor(t, t.TempDir())
	if _, err := p.ConvertFile(path); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestReexportRewritesHistory(t *testing.T) {
	outputDir := t.TempDir()
	p := testProcessor(t, outputDir)

	reg := models.NewRegistry()
	tx := models.NewTransaction(models.KindIncomingPayment)
	tx.DateBooked = "02.03.2023"
	reg.Add(tx)
	if err := writer.WriteJSON(filepath.Join(outputDir, "transactions.json"), reg); err != nil {
		t.Fatal(err)
	}

	if err := p.Reexport(); err != nil {
		t.Fatalf("reexport: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "transactions.csv")); err != nil {
		t.Errorf("csv export missing: %v", err)
	}
}
