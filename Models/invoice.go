package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	InvoicePending       = "PENDING"
	InvoicePartiallyPaid = "PARTIALLY_PAID"
	InvoicePaid          = "PAID"
	InvoiceVoid          = "VOID"
)

// Invoice tracks payments against exactly one contract or reservation.
// AmountPaid and Status are derived bookkeeping, recomputed on every
// payment event that goes through the invoice paths.
type Invoice struct {
	gorm.Model
	AgencyID      uint  `json:"agency_id" gorm:"not null;index"`
	ContractID    *uint `json:"contract_id,omitempty" gorm:"index"`
	ReservationID *uint `json:"reservation_id,omitempty" gorm:"index"`

	Number      string    `json:"number" gorm:"size:50;not null;index"`
	IssueDate   time.Time `json:"issue_date" gorm:"not null"`
	TotalAmount float64   `json:"total_amount" gorm:"not null"`
	AmountPaid  float64   `json:"amount_paid" gorm:"not null;default:0"`
	Status      string    `json:"status" gorm:"size:20;not null;default:PENDING"`
}

// ComputeInvoiceStatus derives the status from the paid/total pair.
// VOID is never produced here; voiding only happens when the parent
// engagement is cancelled.
func ComputeInvoiceStatus(amountPaid, totalAmount float64) string {
	switch {
	case amountPaid <= 0:
		return InvoicePending
	case amountPaid >= totalAmount:
		return InvoicePaid
	default:
		return InvoicePartiallyPaid
	}
}

// InvoiceNumber builds the printed invoice reference, e.g.
// FACT-20250114-0042 for parent id 42.
func InvoiceNumber(issueDate time.Time, parentID uint) string {
	return fmt.Sprintf("FACT-%s-%04d", issueDate.Format("20060102"), parentID%10000)
}

// RefreshInvoice recomputes AmountPaid from the parent engagement's
// payment rows and re-derives the status. VOID invoices keep their status.
// Must run inside the transaction that inserted or changed the payments.
func RefreshInvoice(tx *gorm.DB, invoice *Invoice) error {
	var total float64
	query := tx.Model(&Payment{})
	switch {
	case invoice.ContractID != nil:
		query = query.Where("contract_id = ?", *invoice.ContractID)
	case invoice.ReservationID != nil:
		query = query.Where("reservation_id = ?", *invoice.ReservationID)
	default:
		return nil
	}
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return err
	}

	invoice.AmountPaid = total
	if invoice.Status != InvoiceVoid {
		invoice.Status = ComputeInvoiceStatus(invoice.AmountPaid, invoice.TotalAmount)
	}
	return tx.Model(&Invoice{}).Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{"amount_paid": invoice.AmountPaid, "status": invoice.Status}).Error
}

type InvoicePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER CHECK"`
	Date   string  `json:"date"`
}
