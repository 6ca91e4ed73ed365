// Package api exposes the extraction pipeline over HTTP: a health check
// and a one-shot upload-and-convert endpoint.
package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerline/statement-extractor/internal/models"
	"github.com/ledgerline/statement-extractor/internal/service"
)

// ConvertResponse is the JSON body of the /api/convert endpoint.
type ConvertResponse struct {
	Success        bool                  `json:"success"`
	Error          string                `json:"error,omitempty"`
	Bank           string                `json:"bank,omitempty"`
	AccountNumber  string                `json:"accountNumber,omitempty"`
	Year           int                   `json:"year,omitempty"`
	OpeningBalance string                `json:"openingBalance,omitempty"`
	ClosingBalance string                `json:"closingBalance,omitempty"`
	Reconciled     bool                  `json:"reconciled"`
	MissingAmount  string                `json:"missingAmount,omitempty"`
	Transactions   []*models.Transaction `json:"transactions"`
	Count          int                   `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	logger    *log.Logger
	processor *service.Processor
}

// NewHandler returns a handler converting uploads through the processor.
func NewHandler(logger *log.Logger, processor *service.Processor) *Handler {
	return &Handler{logger: logger, processor: processor}
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleConvert accepts one statement file as the multipart form field
// "file" and returns its extracted transactions. The upload is saved under
// its original name because Revolut exports carry the currency and period
// in the file name.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".csv" {
		return writeError(c, fiber.StatusBadRequest, "only PDF and CSV statements are supported")
	}

	tmpDir, err := os.MkdirTemp("", "statement-upload-")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "cannot create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, filepath.Base(header.Filename))
	if err := c.SaveFile(header, path); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "cannot save uploaded file")
	}

	st, err := h.processor.ConvertFile(path)
	if err != nil {
		h.logger.Error("conversion failed", "file", header.Filename, "err", err)
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	transactions := st.Transactions
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	resp := ConvertResponse{
		Success:       true,
		Bank:          string(st.Bank),
		AccountNumber: st.AccountNumber,
		Year:          st.Year,
		Transactions:  transactions,
		Count:         len(transactions),
	}
	if st.OpeningBalance.Valid {
		resp.OpeningBalance = st.OpeningBalance.Decimal.StringFixed(2)
	}
	if st.ClosingBalance.Valid {
		resp.ClosingBalance = st.ClosingBalance.Decimal.StringFixed(2)
	}
	if missing, ok := st.Reconcile(); ok {
		resp.Reconciled = missing.IsZero()
		if !missing.IsZero() {
			resp.MissingAmount = missing.StringFixed(2)
		}
	}
	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
