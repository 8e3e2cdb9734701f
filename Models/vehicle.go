package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	VehicleAvailable   = "AVAILABLE"
	VehicleRented      = "RENTED"
	VehicleReserved    = "RESERVED"
	VehicleMaintenance = "MAINTENANCE"
	VehicleInactive    = "INACTIVE"
)

type Vehicle struct {
	gorm.Model
	AgencyID uint   `json:"agency_id" gorm:"not null;index;index:idx_vehicles_agency_plate,unique"`
	PlateNo  string `json:"plate_no" gorm:"size:50;not null;index:idx_vehicles_agency_plate,unique"`
	Make     string `json:"make" gorm:"size:100;not null"`
	CarModel string `json:"car_model" gorm:"size:100;not null"`
	Year     int    `json:"year"`
	Color    string `json:"color" gorm:"size:50"`

	Mileage   int64   `json:"mileage" gorm:"not null;default:0"`
	DailyRate float64 `json:"daily_rate" gorm:"not null"`
	FuelLevel int     `json:"fuel_level" gorm:"not null;default:100"`
	Status    string  `json:"status" gorm:"size:20;not null;default:AVAILABLE"`

	// Compliance expiry dates checked by the daily job
	InsuranceExpirationDate  *time.Time `json:"insurance_expiration_date,omitempty"`
	InspectionExpirationDate *time.Time `json:"inspection_expiration_date,omitempty"`
	TrafficLicenseExpiration *time.Time `json:"traffic_license_expiration,omitempty"`
	LastOilChangeMileage     int64      `json:"last_oil_change_mileage" gorm:"not null;default:0"`

	Images datatypes.JSON `json:"images,omitempty"`
}

// UpdateVehicleRequest allows partial patches; every field is optional
// but still range-checked when present. Status only accepts the manual
// states, RENTED and RESERVED are derived and never set by hand.
type UpdateVehicleRequest struct {
	PlateNo                  string  `json:"plate_no"`
	Make                     string  `json:"make"`
	CarModel                 string  `json:"car_model"`
	Year                     int     `json:"year"`
	Color                    string  `json:"color"`
	Mileage                  int64   `json:"mileage" validate:"omitempty,min=0"`
	DailyRate                float64 `json:"daily_rate" validate:"omitempty,gt=0"`
	FuelLevel                int     `json:"fuel_level" validate:"omitempty,min=0,max=100"`
	Status                   string  `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE INACTIVE"`
	InsuranceExpirationDate  string  `json:"insurance_expiration_date"`
	InspectionExpirationDate string  `json:"inspection_expiration_date"`
	TrafficLicenseExpiration string  `json:"traffic_license_expiration"`
	LastOilChangeMileage     int64   `json:"last_oil_change_mileage" validate:"omitempty,min=0"`
}

type VehicleRequest struct {
	PlateNo                  string  `json:"plate_no" validate:"required"`
	Make                     string  `json:"make" validate:"required"`
	CarModel                 string  `json:"car_model" validate:"required"`
	Year                     int     `json:"year"`
	Color                    string  `json:"color"`
	Mileage                  int64   `json:"mileage" validate:"min=0"`
	DailyRate                float64 `json:"daily_rate" validate:"required,gt=0"`
	FuelLevel                int     `json:"fuel_level" validate:"omitempty,min=0,max=100"`
	Status                   string  `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE INACTIVE"`
	InsuranceExpirationDate  string  `json:"insurance_expiration_date"`
	InspectionExpirationDate string  `json:"inspection_expiration_date"`
	TrafficLicenseExpiration string  `json:"traffic_license_expiration"`
	LastOilChangeMileage     int64   `json:"last_oil_change_mileage" validate:"min=0"`
}
