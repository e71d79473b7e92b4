package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicehub/internal/models"
)

func invoice(amount, status string, paymentMethod *string) models.Invoice {
	return models.Invoice{
		Amount:        decimal.RequireFromString(amount),
		Status:        status,
		PaymentMethod: paymentMethod,
	}
}

func strptr(s string) *string { return &s }

func TestAggregateEmptySet(t *testing.T) {
	report := Aggregate(nil)

	assert.Zero(t, report.TotalInvoices)
	assert.True(t, report.TotalAmount.IsZero())
	assert.True(t, report.AverageAmount.IsZero())
	assert.Empty(t, report.ByStatus)
	assert.Equal(t, map[string]int{"not_set": 0}, report.PaymentMethods)
}

func TestAggregateTwoInvoices(t *testing.T) {
	report := Aggregate([]models.Invoice{
		invoice("100.00", models.StatusPending, nil),
		invoice("200.00", models.StatusPaid, nil),
	})

	assert.Equal(t, 2, report.TotalInvoices)
	assert.Equal(t, "300.00", report.TotalAmount.StringFixed(2))
	assert.Equal(t, "150.00", report.AverageAmount.StringFixed(2))

	require.Len(t, report.ByStatus, 2)
	pending := report.ByStatus["pending"]
	assert.Equal(t, 1, pending.Count)
	assert.Equal(t, "100.00", pending.Amount.StringFixed(2))
	paid := report.ByStatus["paid"]
	assert.Equal(t, 1, paid.Count)
	assert.Equal(t, "200.00", paid.Amount.StringFixed(2))
}

func TestAggregateAvoidsPennyDrift(t *testing.T) {
	// 0.10 a hundred times is exactly 10.00 in decimal arithmetic; naive
	// float accumulation would drift.
	invoices := make([]models.Invoice, 100)
	for i := range invoices {
		invoices[i] = invoice("0.10", models.StatusPending, nil)
	}

	report := Aggregate(invoices)
	assert.Equal(t, "10.00", report.TotalAmount.StringFixed(2))
	assert.Equal(t, "0.10", report.AverageAmount.StringFixed(2))
}

func TestAggregateCustomStatusKeys(t *testing.T) {
	report := Aggregate([]models.Invoice{
		invoice("10.00", "on-hold", nil),
		invoice("20.00", "ON-HOLD", nil),
		invoice("5.00", "weird status!", nil),
	})

	// no whitelist, keys are case-sensitive and preserved
	require.Len(t, report.ByStatus, 3)
	assert.Equal(t, 1, report.ByStatus["on-hold"].Count)
	assert.Equal(t, 1, report.ByStatus["ON-HOLD"].Count)
	assert.Equal(t, 1, report.ByStatus["weird status!"].Count)
}

func TestAggregatePaymentMethodBuckets(t *testing.T) {
	report := Aggregate([]models.Invoice{
		invoice("10.00", "paid", strptr("card")),
		invoice("10.00", "paid", strptr("card")),
		invoice("10.00", "paid", strptr("Card")),
		invoice("10.00", "pending", nil),
		invoice("10.00", "pending", nil),
	})

	assert.Equal(t, 2, report.PaymentMethods["card"])
	assert.Equal(t, 1, report.PaymentMethods["Card"], "case is preserved")
	assert.Equal(t, 2, report.PaymentMethods["not_set"])
}

func TestAggregateNegativeAmounts(t *testing.T) {
	// the schema places no floor on amount; credit entries sum through
	report := Aggregate([]models.Invoice{
		invoice("100.00", "paid", nil),
		invoice("-40.00", "refund", nil),
	})

	assert.Equal(t, "60.00", report.TotalAmount.StringFixed(2))
	assert.Equal(t, "30.00", report.AverageAmount.StringFixed(2))
}

func TestAggregateAverageRounding(t *testing.T) {
	report := Aggregate([]models.Invoice{
		invoice("10.00", "paid", nil),
		invoice("10.00", "paid", nil),
		invoice("10.01", "paid", nil),
	})

	assert.Equal(t, "30.01", report.TotalAmount.StringFixed(2))
	assert.Equal(t, "10.00", report.AverageAmount.StringFixed(2))
}
