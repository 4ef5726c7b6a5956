package ingest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/models"
)

func TestProcessBytesStatementCSV(t *testing.T) {
	content := []byte(`17/03/2025;PIX TRANSF ID_A15/03;-2327,00
17/03/2025;MOBILE PAG TIT 426XXXXXX;-287,00
19/03/2025;PIX TRANSF ID_C19/03;1900,00`)

	parser := New(log.New(io.Discard))
	txs, err := parser.ProcessBytes(content, "extrato.txt")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}

	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if txs[0].Description != "PIX TRANSF ID_A15/03" {
		t.Errorf("description = %q", txs[0].Description)
	}
	if txs[0].ProcessedDate != "2025-03-17" {
		t.Errorf("date = %q, want 2025-03-17", txs[0].ProcessedDate)
	}
	if !txs[0].ChargedAmount.Equal(decimal.RequireFromString("-2327.00")) {
		t.Errorf("amount = %s, want -2327.00", txs[0].ChargedAmount)
	}
	if !txs[2].ChargedAmount.Equal(decimal.RequireFromString("1900.00")) {
		t.Errorf("amount = %s, want 1900.00", txs[2].ChargedAmount)
	}
	if txs[0].Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", txs[0].Status)
	}
}

func TestProcessBytesSkipsMalformedRows(t *testing.T) {
	content := []byte(`17/03/2025;OK;-10,00
garbage line
18/03/2025;BAD AMOUNT;abc`)

	parser := New(log.New(io.Discard))
	txs, err := parser.ProcessBytes(content, "extrato.txt")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}
	if len(txs) != 1 || txs[0].Description != "OK" {
		t.Errorf("txs = %+v, want only the valid row", txs)
	}
}

func TestProcessBytesScraperJSON(t *testing.T) {
	content := []byte(`[
		{
			"description": "NETFLIX installment 3 of 12",
			"status": "completed",
			"chargedAmount": -49.9,
			"processedDate": "2024-03-15T00:00:00+02:00",
			"identifier": "ref-1",
			"installments": {"number": 3, "total": 12}
		},
		{
			"description": "Held",
			"status": "hold",
			"chargedAmount": -10
		}
	]`)

	parser := New(log.New(io.Discard))
	txs, err := parser.ProcessBytes(content, "leumi.json")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Installments == nil || txs[0].Installments.Number != 3 {
		t.Errorf("installments = %+v", txs[0].Installments)
	}
	if txs[1].Status != models.StatusOther {
		t.Errorf("unrecognized status mapped to %q, want other", txs[1].Status)
	}
}

func TestProcessBytesUnknownType(t *testing.T) {
	parser := New(log.New(io.Discard))
	if _, err := parser.ProcessBytes([]byte("x"), "statement.pdf"); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestSource(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "extrato.txt")
	if err := os.WriteFile(tmpFile, []byte("17/03/2025;PIX;-100,00\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := New(log.New(io.Discard))
	result := parser.Source(models.Statement{
		Name:          "Itau Checking",
		FilePath:      tmpFile,
		AccountNumber: "1234",
		AccountName:   "itau-checking",
	})

	if !result.Success {
		t.Fatalf("source failed: %s", result.Error)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if result.Transactions[0].AccountName != "itau-checking" || result.Transactions[0].AccountNumber != "1234" {
		t.Errorf("account identity not attached: %+v", result.Transactions[0])
	}
}

func TestSourceMissingFile(t *testing.T) {
	parser := New(log.New(io.Discard))
	result := parser.Source(models.Statement{Name: "gone", FilePath: "/does/not/exist.txt"})

	if result.Success {
		t.Error("expected failure for missing file")
	}
	if result.Error == "" {
		t.Error("expected error text on failed result")
	}
}
