package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses recognized by convention. Any string is accepted and
// stored as-is; this set exists for UI purposes only.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Invoice maps to the `invoices` table.
type Invoice struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerName  string          `gorm:"column:customer_name;size:255;not null" json:"customer_name"`
	CustomerEmail string          `gorm:"column:customer_email;size:255;not null" json:"customer_email"`
	InvoiceNumber string          `gorm:"column:invoice_number;size:255;not null;index" json:"invoice_number"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Status        string          `gorm:"column:status;size:100;not null;index" json:"status"`
	Description   *string         `gorm:"column:description;type:text" json:"description"`
	PaymentMethod *string         `gorm:"column:payment_method;size:100" json:"payment_method"`
	IssueDate     Date            `gorm:"column:issue_date;type:date" json:"issue_date"`
	DueDate       Date            `gorm:"column:due_date;type:date" json:"due_date"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}
