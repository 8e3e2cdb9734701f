package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInvoiceStatus(t *testing.T) {
	tests := []struct {
		name   string
		paid   float64
		total  float64
		expect string
	}{
		{"nothing paid", 0, 1000, InvoicePending},
		{"partially paid", 400, 1000, InvoicePartiallyPaid},
		{"exactly paid", 1000, 1000, InvoicePaid},
		{"overpaid", 1200, 1000, InvoicePaid},
		{"zero total", 0, 0, InvoicePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ComputeInvoiceStatus(tt.paid, tt.total))
		})
	}
}

func TestInvoiceNumber(t *testing.T) {
	issueDate := time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "FACT-20250114-0042", InvoiceNumber(issueDate, 42))
	assert.Equal(t, "FACT-20250114-0007", InvoiceNumber(issueDate, 7))
	// Only the last four digits of the parent id survive
	assert.Equal(t, "FACT-20250114-2345", InvoiceNumber(issueDate, 12345))
}

func TestRefreshInvoice(t *testing.T) {
	db := newTestDB(t)

	contractID := uint(1)
	invoice := Invoice{
		AgencyID:    1,
		ContractID:  &contractID,
		Number:      "FACT-20250114-0001",
		IssueDate:   time.Now(),
		TotalAmount: 1000,
		Status:      InvoicePending,
	}
	require.NoError(t, db.Create(&invoice).Error)

	require.NoError(t, db.Create(&Payment{
		AgencyID: 1, ContractID: &contractID, Amount: 400, Method: PaymentCash, Date: time.Now(),
	}).Error)

	require.NoError(t, RefreshInvoice(db, &invoice))
	assert.Equal(t, 400.0, invoice.AmountPaid)
	assert.Equal(t, InvoicePartiallyPaid, invoice.Status)

	require.NoError(t, db.Create(&Payment{
		AgencyID: 1, ContractID: &contractID, Amount: 600, Method: PaymentCard, Date: time.Now(),
	}).Error)

	require.NoError(t, RefreshInvoice(db, &invoice))
	assert.Equal(t, 1000.0, invoice.AmountPaid)
	assert.Equal(t, InvoicePaid, invoice.Status)

	var stored Invoice
	require.NoError(t, db.First(&stored, invoice.ID).Error)
	assert.Equal(t, InvoicePaid, stored.Status)
	assert.Equal(t, 1000.0, stored.AmountPaid)
}

func TestRefreshInvoiceKeepsVoidStatus(t *testing.T) {
	db := newTestDB(t)

	reservationID := uint(9)
	invoice := Invoice{
		AgencyID:      1,
		ReservationID: &reservationID,
		Number:        "FACT-20250114-0009",
		IssueDate:     time.Now(),
		TotalAmount:   500,
		Status:        InvoiceVoid,
	}
	require.NoError(t, db.Create(&invoice).Error)
	require.NoError(t, db.Create(&Payment{
		AgencyID: 1, ReservationID: &reservationID, Amount: 500, Method: PaymentCash, Date: time.Now(),
	}).Error)

	require.NoError(t, RefreshInvoice(db, &invoice))
	assert.Equal(t, 500.0, invoice.AmountPaid)
	assert.Equal(t, InvoiceVoid, invoice.Status)
}
