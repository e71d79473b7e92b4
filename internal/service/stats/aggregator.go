// Package stats computes aggregate metrics over the full invoice set.
package stats

import (
	"github.com/shopspring/decimal"

	"invoicehub/internal/models"
)

// StatusBreakdown is the per-status slice of the report.
type StatusBreakdown struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Report is the aggregate view over all invoices.
type Report struct {
	TotalInvoices  int                        `json:"total_invoices"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	AverageAmount  decimal.Decimal            `json:"average_amount"`
	ByStatus       map[string]StatusBreakdown `json:"by_status"`
	PaymentMethods map[string]int             `json:"payment_methods"`
}

// NotSetKey buckets invoices whose payment_method is null.
const NotSetKey = "not_set"

// Aggregate computes the report in a single pass. Amounts accumulate in
// decimal arithmetic so totals are exact to two places.
func Aggregate(invoices []models.Invoice) *Report {
	report := &Report{
		ByStatus:       make(map[string]StatusBreakdown),
		PaymentMethods: map[string]int{NotSetKey: 0},
	}

	total := decimal.Zero
	for i := range invoices {
		inv := &invoices[i]

		total = total.Add(inv.Amount)

		bs := report.ByStatus[inv.Status]
		bs.Count++
		bs.Amount = bs.Amount.Add(inv.Amount)
		report.ByStatus[inv.Status] = bs

		if inv.PaymentMethod == nil {
			report.PaymentMethods[NotSetKey]++
		} else {
			report.PaymentMethods[*inv.PaymentMethod]++
		}
	}

	report.TotalInvoices = len(invoices)
	report.TotalAmount = total.Round(2)
	if report.TotalInvoices > 0 {
		report.AverageAmount = total.
			Div(decimal.NewFromInt(int64(report.TotalInvoices))).
			Round(2)
	} else {
		report.AverageAmount = decimal.Zero
	}
	return report
}
