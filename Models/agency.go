package Models

import (
	"gorm.io/gorm"
)

// Agency is the tenant root. Every other row carries its ID and all
// queries are scoped by it.
type Agency struct {
	gorm.Model
	Name            string `json:"name" gorm:"size:255;not null"`
	Address         string `json:"address" gorm:"size:500"`
	Phone           string `json:"phone" gorm:"size:50"`
	Email           string `json:"email" gorm:"size:255"`
	TaxID           string `json:"tax_id" gorm:"size:100"`
	CommercialRegNo string `json:"commercial_reg_no" gorm:"size:100"`

	// Reminder thresholds for the daily compliance check
	DocumentReminderDays int `json:"document_reminder_days" gorm:"not null;default:30"`
	OilChangeReminderKm  int `json:"oil_change_reminder_km" gorm:"not null;default:10000"`
}

type AgencySettingsRequest struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email" validate:"omitempty,email"`
	TaxID                string `json:"tax_id"`
	CommercialRegNo      string `json:"commercial_reg_no"`
	DocumentReminderDays int    `json:"document_reminder_days" validate:"omitempty,min=1,max=365"`
	OilChangeReminderKm  int    `json:"oil_change_reminder_km" validate:"omitempty,min=100"`
}
