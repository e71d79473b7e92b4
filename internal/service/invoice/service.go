// Package invoice implements the invoice domain service: validation,
// defaulting, and the CRUD contract against the record store.
package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"invoicehub/internal/apperr"
	"invoicehub/internal/auth"
	"invoicehub/internal/models"
	"invoicehub/internal/pkg/clock"
)

// DueDateOffsetDays is added to issue_date when due_date is omitted at
// creation time. Due dates are never re-derived after creation.
const DueDateOffsetDays = 15

// Store is the record store adapter the service dispatches to. Absent
// records are reported as nil / false rather than errors.
type Store interface {
	Insert(invoice *models.Invoice) (*models.Invoice, error)
	Get(id uint) (*models.Invoice, error)
	List() ([]models.Invoice, error)
	Update(id uint, updates map[string]interface{}) (*models.Invoice, error)
	Delete(id uint) (bool, error)
}

// StatsInvalidator drops any cached stats report after a successful
// mutation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// EventNotifier publishes invoice lifecycle events.
type EventNotifier interface {
	Notify(eventType string, invoice *models.Invoice)
}

// Service validates input, applies defaulting rules and executes CRUD
// against the store. Every operation gates on a valid identity before any
// store access.
type Service struct {
	store    Store
	clock    clock.Clock
	stats    StatsInvalidator
	notifier EventNotifier
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(store Store, clk clock.Clock, stats StatsInvalidator, notifier EventNotifier, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		clock:    clk,
		stats:    stats,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so validation messages match the
	// wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Service) authorize(identity *auth.Identity) error {
	if !identity.ValidAt(s.clock.Now()) {
		return apperr.ErrUnauthorized
	}
	return nil
}

// Create validates the payload, applies defaults and inserts a new invoice.
func (s *Service) Create(ctx context.Context, identity *auth.Identity, req *models.InvoiceCreateRequest) (*models.Invoice, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	issueDate := models.NewDate(s.clock.Now().UTC())
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := issueDate.AddDays(DueDateOffsetDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice := &models.Invoice{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        *req.Amount,
		Status:        req.Status,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		IssueDate:     issueDate,
		DueDate:       dueDate,
	}

	stored, err := s.store.Insert(invoice)
	if err != nil {
		return nil, apperr.Store("insert", err)
	}

	s.afterMutation(ctx)
	if s.notifier != nil {
		s.notifier.Notify("invoice.created", stored)
	}
	return stored, nil
}

// Get returns the invoice matching id.
func (s *Service) Get(ctx context.Context, identity *auth.Identity, id uint) (*models.Invoice, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}
	invoice, err := s.store.Get(id)
	if err != nil {
		return nil, apperr.Store("get", err)
	}
	if invoice == nil {
		return nil, apperr.ErrNotFound
	}
	return invoice, nil
}

// List returns all invoices in the store's canonical order (id ascending).
func (s *Service) List(ctx context.Context, identity *auth.Identity) ([]models.Invoice, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}
	invoices, err := s.store.List()
	if err != nil {
		return nil, apperr.Store("list", err)
	}
	return invoices, nil
}

// Update merges a partial patch into an existing invoice. Fields absent from
// the patch are left untouched; null clears nullable fields; present fields
// pass the same validation as create.
func (s *Service) Update(ctx context.Context, identity *auth.Identity, id uint, patch map[string]json.RawMessage) (*models.Invoice, error) {
	if err := s.authorize(identity); err != nil {
		return nil, err
	}

	updates, err := s.buildUpdates(patch)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("patch", "No fields to update")
	}

	updated, err := s.store.Update(id, updates)
	if err != nil {
		return nil, apperr.Store("update", err)
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}

	s.afterMutation(ctx)
	if s.notifier != nil {
		s.notifier.Notify("invoice.updated", updated)
	}
	return updated, nil
}

// Delete removes an invoice permanently.
func (s *Service) Delete(ctx context.Context, identity *auth.Identity, id uint) error {
	if err := s.authorize(identity); err != nil {
		return err
	}
	deleted, err := s.store.Delete(id)
	if err != nil {
		return apperr.Store("delete", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}

	s.afterMutation(ctx)
	if s.notifier != nil {
		s.notifier.Notify("invoice.deleted", &models.Invoice{ID: id})
	}
	return nil
}

func (s *Service) afterMutation(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func (s *Service) validateCreate(req *models.InvoiceCreateRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("payload", "Invalid request payload")
	}
	verr := &apperr.ValidationError{}
	for _, fe := range invalid {
		verr.Add(fe.Field(), fieldMessage(fe.Field(), fe.Tag()))
	}
	return verr
}

func fieldMessage(field, tag string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " is too short"
	default:
		return field + " is invalid"
	}
}

// buildUpdates converts a raw JSON patch into typed column updates,
// validating each present field. System-assigned fields are silently
// ignored, matching the create contract.
func (s *Service) buildUpdates(patch map[string]json.RawMessage) (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	verr := &apperr.ValidationError{}

	for key, raw := range patch {
		switch key {
		case "id", "created_at", "updated_at":
			// never accepted from client input

		case "customer_name", "invoice_number", "status":
			v, err := asString(raw)
			if err != nil || strings.TrimSpace(v) == "" {
				verr.Add(key, key+" must be a non-empty string")
				continue
			}
			updates[key] = v

		case "customer_email":
			v, err := asString(raw)
			if err != nil || s.validate.Var(v, "required,email") != nil {
				verr.Add(key, "customer_email must be a valid email address")
				continue
			}
			updates[key] = v

		case "amount":
			if isNull(raw) {
				verr.Add(key, "amount must be a number")
				continue
			}
			var d decimal.Decimal
			if err := json.Unmarshal(raw, &d); err != nil {
				verr.Add(key, "amount must be a number")
				continue
			}
			updates[key] = d

		case "description", "payment_method":
			if isNull(raw) {
				updates[key] = nil
				continue
			}
			v, err := asString(raw)
			if err != nil {
				verr.Add(key, key+" must be a string or null")
				continue
			}
			updates[key] = v

		case "issue_date", "due_date":
			v, err := asString(raw)
			if err != nil {
				verr.Add(key, key+" must be a YYYY-MM-DD date")
				continue
			}
			date, err := models.ParseDate(v)
			if err != nil {
				verr.Add(key, key+" must be a YYYY-MM-DD date")
				continue
			}
			updates[key] = date

		default:
			// unknown fields are ignored
		}
	}

	if !verr.Empty() {
		return nil, verr
	}
	return updates, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func asString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", &json.UnmarshalTypeError{Value: "null"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
