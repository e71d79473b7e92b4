package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"invoicehub/internal/middleware"
	"invoicehub/internal/models"
)

// InvoiceHandler serves the /invoices endpoints.
type InvoiceHandler struct {
	svc    InvoiceService
	stats  StatsService
	logger *zap.Logger
}

func NewInvoiceHandler(svc InvoiceService, stats StatsService, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{svc: svc, stats: stats, logger: logger}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c echo.Context) error {
	invoices, err := h.svc.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return writeError(c, h.logger, err, "Not found")
	}
	return c.JSON(http.StatusOK, invoices)
}

// GetSingle handles GET /invoices/single?invoice_id={id}.
func (h *InvoiceHandler) GetSingle(c echo.Context) error {
	raw := c.QueryParam("invoice_id")
	if raw == "" {
		return detailJSON(c, http.StatusBadRequest, "invoice_id query parameter is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return detailJSON(c, http.StatusBadRequest, "invoice_id must be an integer")
	}

	invoice, err := h.svc.Get(c.Request().Context(), middleware.IdentityFrom(c), uint(id))
	if err != nil {
		return writeError(c, h.logger, err, fmt.Sprintf("Invoice with ID %d not found", id))
	}
	return c.JSON(http.StatusOK, invoice)
}

// Stats handles GET /invoices/stats.
func (h *InvoiceHandler) Stats(c echo.Context) error {
	report, err := h.stats.ComputeStats(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return writeError(c, h.logger, err, "Not found")
	}
	return c.JSON(http.StatusOK, report)
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req models.InvoiceCreateRequest
	if err := c.Bind(&req); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	invoice, err := h.svc.Create(c.Request().Context(), middleware.IdentityFrom(c), &req)
	if err != nil {
		return writeError(c, h.logger, err, "Not found")
	}
	return c.JSON(http.StatusCreated, invoice)
}

// Update handles PUT /invoices/{id}.
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invoice id must be an integer")
	}

	var patch map[string]json.RawMessage
	if err := c.Bind(&patch); err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	invoice, err := h.svc.Update(c.Request().Context(), middleware.IdentityFrom(c), uint(id), patch)
	if err != nil {
		return writeError(c, h.logger, err, fmt.Sprintf("Invoice with ID %d not found", id))
	}
	return c.JSON(http.StatusOK, invoice)
}

// Delete handles DELETE /invoices/{id}.
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return detailJSON(c, http.StatusBadRequest, "Invoice id must be an integer")
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.IdentityFrom(c), uint(id)); err != nil {
		return writeError(c, h.logger, err, fmt.Sprintf("Invoice with ID %d not found", id))
	}
	return c.NoContent(http.StatusNoContent)
}
