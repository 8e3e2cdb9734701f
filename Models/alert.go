package Models

import (
	"crypto/sha256"
	"fmt"

	"gorm.io/gorm"
)

const (
	AlertInsurance      = "INSURANCE"
	AlertInspection     = "TECHNICAL_INSPECTION"
	AlertTrafficLicense = "TRAFFIC_LICENSE"
	AlertOilChange      = "OIL_CHANGE"
	AlertClientArrival  = "CLIENT_ARRIVAL"
	AlertCustom         = "CUSTOM"
)

type Alert struct {
	gorm.Model
	AgencyID      uint   `json:"agency_id" gorm:"not null;index"`
	VehicleID     *uint  `json:"vehicle_id,omitempty" gorm:"index"`
	ClientID      *uint  `json:"client_id,omitempty" gorm:"index"`
	ReservationID *uint  `json:"reservation_id,omitempty"`
	Type          string `json:"type" gorm:"size:30;not null"`
	Message       string `json:"message" gorm:"size:500;not null"`
	Resolved      bool   `json:"resolved" gorm:"not null;default:false"`
	Hash          string `json:"-" gorm:"uniqueIndex;size:64"`
}

// BeforeCreate generates a dedup hash so the daily check can re-run
// without stacking duplicate alerts for the same subject and type.
func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.Hash == "" {
		var vehicleID, clientID, reservationID uint
		if a.VehicleID != nil {
			vehicleID = *a.VehicleID
		}
		if a.ClientID != nil {
			clientID = *a.ClientID
		}
		if a.ReservationID != nil {
			reservationID = *a.ReservationID
		}
		data := fmt.Sprintf("%d|%s|%d|%d|%d|%s", a.AgencyID, a.Type, vehicleID, clientID, reservationID, a.Message)
		hash := sha256.Sum256([]byte(data))
		a.Hash = fmt.Sprintf("%x", hash)
	}
	return nil
}
