package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ledgerline/statement-extractor/internal/parser"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
	if cfg.ListenAddr != ":3000" {
		t.Errorf("listen addr: got %q", cfg.ListenAddr)
	}
	if cfg.RevolutAccount != parser.DefaultRevolutAccount {
		t.Errorf("revolut account: got %q", cfg.RevolutAccount)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement-extractor.yaml")
	content := `
output-dir: /tmp/exports
rules-file: rules.yaml
card-owners:
  "1234": "Test owner"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/tmp/exports" {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
	if cfg.RulesFile != "rules.yaml" {
		t.Errorf("rules file: got %q", cfg.RulesFile)
	}
	if cfg.CardOwners["1234"] != "Test owner" {
		t.Errorf("card owners: got %v", cfg.CardOwners)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", ".", "")
	if err := flags.Set("output-dir", "/data/out"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/data/out" {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
}
