package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ContractActive    = "ACTIVE"
	ContractCancelled = "CANCELLED"
	ContractCompleted = "COMPLETED"
)

const (
	VehicleStateGood    = "GOOD"
	VehicleStateDamaged = "DAMAGED"
)

type Contract struct {
	gorm.Model
	AgencyID          uint  `json:"agency_id" gorm:"not null;index"`
	ClientID          uint  `json:"client_id" gorm:"not null;index"`
	VehicleID         uint  `json:"vehicle_id" gorm:"not null;index"`
	SecondaryDriverID *uint `json:"secondary_driver_id,omitempty"`
	ReservationID     *uint `json:"reservation_id,omitempty" gorm:"index"`

	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:ACTIVE"`

	DailyRate float64 `json:"daily_rate" gorm:"not null"`
	TotalCost float64 `json:"total_cost" gorm:"not null"`

	PickupMileage   int64  `json:"pickup_mileage" gorm:"not null"`
	ReturnMileage   *int64 `json:"return_mileage,omitempty"`
	PickupFuelLevel int    `json:"pickup_fuel_level" gorm:"not null;default:100"`
	ReturnFuelLevel *int   `json:"return_fuel_level,omitempty"`
	Notes           string `json:"notes" gorm:"type:text"`

	Client          Client      `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	SecondaryDriver *Client     `json:"secondary_driver,omitempty" gorm:"foreignKey:SecondaryDriverID"`
	Vehicle         Vehicle     `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Reservation     *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
	Payments        []Payment   `json:"payments,omitempty" gorm:"foreignKey:ContractID"`
	Invoice         *Invoice    `json:"invoice,omitempty" gorm:"foreignKey:ContractID"`
}

type CreateContractRequest struct {
	// Either a confirmed reservation to convert...
	ReservationID uint `json:"reservation_id"`

	// ...or the full set of fields for a direct contract.
	ClientID          uint    `json:"client_id"`
	VehicleID         uint    `json:"vehicle_id"`
	SecondaryDriverID uint    `json:"secondary_driver_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	DailyRate         float64 `json:"daily_rate"`
	TotalCost         float64 `json:"total_cost"`
	Notes             string  `json:"notes"`

	FirstPayment *PaymentInput `json:"first_payment" validate:"omitempty"`
}

type TerminateContractRequest struct {
	ReturnDate      string        `json:"return_date" validate:"required"`
	ReturnMileage   int64         `json:"return_mileage" validate:"required,min=0"`
	ReturnFuelLevel *int          `json:"return_fuel_level" validate:"omitempty,min=0,max=100"`
	VehicleState    string        `json:"vehicle_state" validate:"omitempty,oneof=GOOD DAMAGED"`
	Notes           string        `json:"notes"`
	FinalPayment    *PaymentInput `json:"final_payment" validate:"omitempty"`
}

type UpdateContractRequest struct {
	EndDate           string   `json:"end_date"`
	DailyRate         float64  `json:"daily_rate" validate:"omitempty,gt=0"`
	TotalCost         float64  `json:"total_cost" validate:"omitempty,gt=0"`
	SecondaryDriverID *uint    `json:"secondary_driver_id"`
	Notes             *string  `json:"notes"`
}
