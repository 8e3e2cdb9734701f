package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentCash         = "CASH"
	PaymentCard         = "CARD"
	PaymentBankTransfer = "BANK_TRANSFER"
	PaymentCheck        = "CHECK"
)

// Payment is linked to exactly one of Contract/Reservation.
type Payment struct {
	gorm.Model
	AgencyID      uint  `json:"agency_id" gorm:"not null;index"`
	ContractID    *uint `json:"contract_id,omitempty" gorm:"index"`
	ReservationID *uint `json:"reservation_id,omitempty" gorm:"index"`

	Amount float64   `json:"amount" gorm:"not null"`
	Method string    `json:"method" gorm:"size:20;not null"`
	Date   time.Time `json:"date" gorm:"not null"`
	Notes  string    `json:"notes" gorm:"size:500"`
}
