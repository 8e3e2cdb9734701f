package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
)

type Reservation struct {
	gorm.Model
	AgencyID  uint `json:"agency_id" gorm:"not null;index"`
	ClientID  uint `json:"client_id" gorm:"not null;index"`
	VehicleID uint `json:"vehicle_id" gorm:"not null;index"`

	StartDate     time.Time `json:"start_date" gorm:"not null"`
	EndDate       time.Time `json:"end_date" gorm:"not null"`
	Status        string    `json:"status" gorm:"size:20;not null;default:PENDING"`
	EstimatedCost float64   `json:"estimated_cost" gorm:"not null"`
	Notes         string    `json:"notes" gorm:"type:text"`

	Client   Client    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Vehicle  Vehicle   `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ReservationID"`
	Invoice  *Invoice  `json:"invoice,omitempty" gorm:"foreignKey:ReservationID"`
}

type PaymentInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER CHECK"`
	Date   string  `json:"date"`
}

type CreateReservationRequest struct {
	ClientID      uint           `json:"client_id" validate:"required"`
	VehicleID     uint           `json:"vehicle_id" validate:"required"`
	StartDate     string         `json:"start_date" validate:"required"`
	EndDate       string         `json:"end_date" validate:"required"`
	EstimatedCost float64        `json:"estimated_cost" validate:"required,gt=0"`
	Notes         string         `json:"notes"`
	Payments      []PaymentInput `json:"payments" validate:"omitempty,dive"`
}

type ConfirmReservationRequest struct {
	DownPayment *PaymentInput `json:"down_payment" validate:"omitempty"`
}

type UpdateReservationRequest struct {
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	EstimatedCost float64        `json:"estimated_cost" validate:"omitempty,gt=0"`
	Notes         *string        `json:"notes"`
	Payments      []PaymentInput `json:"payments" validate:"omitempty,dive"`
}
