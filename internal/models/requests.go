package models

import "github.com/shopspring/decimal"

// InvoiceCreateRequest is the payload for POST /invoices. System-assigned
// fields (id, created_at, updated_at) are never part of the payload.
type InvoiceCreateRequest struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerEmail string           `json:"customer_email" validate:"required,email"`
	InvoiceNumber string           `json:"invoice_number" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Status        string           `json:"status" validate:"required"`
	Description   *string          `json:"description"`
	PaymentMethod *string          `json:"payment_method"`
	IssueDate     *Date            `json:"issue_date"`
	DueDate       *Date            `json:"due_date"`
}

// SignupRequest is the payload for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
	ExpiresIn   int64  `json:"expires_in"`
}
