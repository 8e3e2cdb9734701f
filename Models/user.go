package Models

import (
	"gorm.io/gorm"
)

const (
	RoleUser  = 1
	RoleAdmin = 2
)

const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// User belongs to one agency. Email is unique per agency, not globally,
// so two agencies can each have a user with the same address.
type User struct {
	gorm.Model
	AgencyID uint   `json:"agency_id" gorm:"not null;index;index:idx_users_agency_email,unique"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255;not null;index:idx_users_agency_email,unique"`
	Password []byte `json:"-" gorm:"not null"`
	Role     int    `json:"role" gorm:"not null;default:1"`
	Status   string `json:"status" gorm:"size:20;not null;default:ACTIVE"`

	Agency Agency `json:"agency,omitempty" gorm:"foreignKey:AgencyID"`
}

type RegisterRequest struct {
	AgencyName string `json:"agency_name" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     int    `json:"role" validate:"omitempty,oneof=1 2"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     int    `json:"role" validate:"omitempty,oneof=1 2"`
	Status   string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}
