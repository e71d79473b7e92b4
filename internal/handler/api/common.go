package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"invoicehub/internal/apperr"
	"invoicehub/internal/auth"
	"invoicehub/internal/models"
	"invoicehub/internal/service/stats"
)

// InvoiceService is the domain service surface the handlers dispatch to.
type InvoiceService interface {
	Create(ctx context.Context, identity *auth.Identity, req *models.InvoiceCreateRequest) (*models.Invoice, error)
	Get(ctx context.Context, identity *auth.Identity, id uint) (*models.Invoice, error)
	List(ctx context.Context, identity *auth.Identity) ([]models.Invoice, error)
	Update(ctx context.Context, identity *auth.Identity, id uint, patch map[string]json.RawMessage) (*models.Invoice, error)
	Delete(ctx context.Context, identity *auth.Identity, id uint) error
}

// StatsService computes the aggregate report.
type StatsService interface {
	ComputeStats(ctx context.Context, identity *auth.Identity) (*stats.Report, error)
}

// detailJSON writes the `{"detail": "..."}` error envelope used by every
// error response.
func detailJSON(c echo.Context, status int, detail string) error {
	return c.JSON(status, map[string]string{"detail": detail})
}

// writeError maps a domain error onto the HTTP error taxonomy. notFoundMsg
// lets the caller keep the id-specific 404 message; store errors are logged
// and surfaced as a generic 500.
func writeError(c echo.Context, logger *zap.Logger, err error, notFoundMsg string) error {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return detailJSON(c, http.StatusBadRequest, verr.Error())
	}
	if errors.Is(err, apperr.ErrUnauthorized) {
		return detailJSON(c, http.StatusUnauthorized, "Could not validate credentials")
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return detailJSON(c, http.StatusNotFound, notFoundMsg)
	}
	var serr *apperr.StoreError
	if errors.As(err, &serr) {
		logger.Error("Record store failure", zap.String("op", serr.Op), zap.Error(serr.Err))
		return detailJSON(c, http.StatusInternalServerError, "Internal server error")
	}
	logger.Error("Unexpected error", zap.Error(err))
	return detailJSON(c, http.StatusInternalServerError, "Internal server error")
}
