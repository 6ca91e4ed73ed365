package parser

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"-1 234,56", "-1234.56", false},
		{"+30 000,00", "30000", false},
		{"-30 000.00", "-30000", false},
		{"-1 234,56", "-1234.56", false},
		{"0.00", "0", false},
		{"abc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Errorf("expected FormatError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestContainsDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Platba kartou 12.03.2023", "12.03.2023"},
		{"01.02.2023 03.04.2023", "01.02.2023"},
		{"12.3.2023", ""},
		{"no date here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ContainsDate(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFindAmountLine(t *testing.T) {
	lines := []string{
		"Platba kartou",
		"123456",
		"some -dash text",
		"-250,00",
		"+100,00",
	}

	line, i := FindAmountLine(lines, 0)
	if line != "-250,00" || i != 3 {
		t.Errorf("got (%q, %d), want (%q, %d)", line, i, "-250,00", 3)
	}

	// Search starts at the given index, not at zero.
	line, i = FindAmountLine(lines, 4)
	if line != "+100,00" || i != 0 {
		t.Errorf("got (%q, %d), want (%q, %d)", line, i, "+100,00", 0)
	}

	if _, i := FindAmountLine([]string{"no", "amounts"}, 0); i != -1 {
		t.Errorf("expected -1 for no amount line, got %d", i)
	}

	// A bare zero amount carries no sign but still counts.
	line, i = FindAmountLine([]string{"text", "0.00"}, 0)
	if line != "0.00" || i != 1 {
		t.Errorf("got (%q, %d), want (%q, %d)", line, i, "0.00", 1)
	}
}

func TestFindAccountNumberLine(t *testing.T) {
	lines := []string{
		"Odchozí úhrada",
		"some text",
		"  1234567890/0800  ",
	}

	line, i := FindAccountNumberLine(lines, 0)
	if line != "1234567890/0800" || i != 2 {
		t.Errorf("got (%q, %d), want trimmed account line at 2", line, i)
	}

	if _, i := FindAccountNumberLine(lines, 3); i != -1 {
		t.Errorf("expected -1 past the end, got %d", i)
	}
}

func TestConvertRevolutTimestamp(t *testing.T) {
	got, err := ConvertRevolutTimestamp("2023-04-01 10:30:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "01.04.2023" {
		t.Errorf("got %q, want %q", got, "01.04.2023")
	}

	if _, err := ConvertRevolutTimestamp("not a timestamp"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}
