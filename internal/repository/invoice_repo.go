package repository

import (
	"errors"

	"gorm.io/gorm"

	"invoicehub/internal/models"
)

// InvoiceRepository handles invoice database operations. Absent records are
// reported as (nil, nil) / (false, nil) so callers stay decoupled from GORM.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Insert persists a new invoice. The store assigns id, created_at and
// updated_at.
func (r *InvoiceRepository) Insert(invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// Get returns an invoice by id, or nil when it does not exist.
func (r *InvoiceRepository) Get(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices ordered by id ascending.
func (r *InvoiceRepository) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Order("id ASC").Find(&invoices).Error
	return invoices, err
}

// Update applies a partial column update and returns the merged record, or
// nil when the invoice does not exist. updated_at is refreshed by GORM.
func (r *InvoiceRepository) Update(id uint, updates map[string]interface{}) (*models.Invoice, error) {
	existing, err := r.Get(id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := r.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(id)
}

// Delete removes an invoice permanently. It reports whether a row was
// actually deleted.
func (r *InvoiceRepository) Delete(id uint) (bool, error) {
	tx := r.db.Delete(&models.Invoice{}, "id = ?", id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
