package models

import (
	"time"
)

// User représente un propriétaire de tenant (le compte facturé)

type Role string

const (
	AdminRole Role = "ADMIN"
	OwnerRole Role = "OWNER"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Password    string    `json:"-" gorm:"not null"`
	CompanyName string    `json:"companyName"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        Role      `json:"role" gorm:"type:varchar(20);default:'OWNER'"`
	Enable      bool      `json:"enable" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserCreate est le payload attendu à l'inscription
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
