package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerline/statement-extractor/internal/config"
	"github.com/ledgerline/statement-extractor/internal/service"
)

const revolutFixture = "Type,State,Started Date,Completed Date,Description,Amount,Fee,Currency,Balance\n" +
	"TOPUP,COMPLETED,2023-04-01 10:00:00,2023-04-02 08:30:00,Top up,1000.00,0.00,CZK,1000.00\n" +
	"CARD_PAYMENT,COMPLETED,2023-04-03 12:00:00,2023-04-04 09:00:00,Groceries,-120.00,0.00,CZK,880.00\n"

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := log.New(io.Discard)
	processor, err := service.New(logger, &config.Config{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	app := fiber.New()
	NewHandler(logger, processor).Register(app)
	return app
}

func multipartUpload(t *testing.T, fileName, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q", body["status"])
	}
	if body["engine"] != "fiber" {
		t.Errorf("engine field: got %q", body["engine"])
	}
}

func TestHandleConvert(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(multipartUpload(t, "czk23.csv", revolutFixture), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var body ConvertResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success, got error %q", body.Error)
	}
	if body.Bank != "revolut" {
		t.Errorf("bank: got %q", body.Bank)
	}
	if body.Count != 2 || len(body.Transactions) != 2 {
		t.Errorf("count: got %d with %d transactions", body.Count, len(body.Transactions))
	}
	if body.OpeningBalance != "0.00" {
		t.Errorf("opening balance: got %q", body.OpeningBalance)
	}
	if body.ClosingBalance != "880.00" {
		t.Errorf("closing balance: got %q", body.ClosingBalance)
	}
	if !body.Reconciled {
		t.Errorf("expected reconciled statement, missing %q", body.MissingAmount)
	}
}

func TestHandleConvertWithoutFile(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleConvertRejectsUnknownExtension(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(multipartUpload(t, "statement.txt", "text"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
