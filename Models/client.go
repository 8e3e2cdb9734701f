package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is a renter. DriverLicense and Email are unique per agency.
type Client struct {
	gorm.Model
	AgencyID      uint           `json:"agency_id" gorm:"not null;index;index:idx_clients_agency_license,unique;index:idx_clients_agency_email,unique"`
	FirstName     string         `json:"first_name" gorm:"size:255;not null"`
	LastName      string         `json:"last_name" gorm:"size:255;not null"`
	Email         string         `json:"email" gorm:"size:255;not null;index:idx_clients_agency_email,unique"`
	Phone         string         `json:"phone" gorm:"size:50"`
	Address       string         `json:"address" gorm:"size:500"`
	NationalID    string         `json:"national_id" gorm:"size:100"`
	DriverLicense string         `json:"driver_license" gorm:"size:100;not null;index:idx_clients_agency_license,unique"`
	BirthDate     *string        `json:"birth_date,omitempty" gorm:"size:10"`
	Documents     datatypes.JSON `json:"documents,omitempty"`
	Notes         string         `json:"notes" gorm:"type:text"`
}

// UpdateClientRequest allows partial patches; fields are optional but
// still format-checked when present.
type UpdateClientRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	NationalID    string `json:"national_id"`
	DriverLicense string `json:"driver_license"`
	BirthDate     string `json:"birth_date"`
	Notes         string `json:"notes"`
}

type ClientRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	NationalID    string `json:"national_id"`
	DriverLicense string `json:"driver_license" validate:"required"`
	BirthDate     string `json:"birth_date"`
	Notes         string `json:"notes"`
}
