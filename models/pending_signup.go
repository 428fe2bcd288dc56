package models

import (
	"time"
)

// PendingSignup conserve côté serveur l'intention d'inscription tant que le
// paiement n'est pas confirmé. La ligne est résolue uniquement à partir du
// merchant_order_id porté par le callback de la passerelle.
type PendingSignup struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MerchantOrderID string    `json:"merchantOrderId" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email           string    `json:"email" gorm:"not null"`
	Password        string    `json:"-" gorm:"not null"`
	CompanyName     string    `json:"companyName"`
	PhoneNumber     string    `json:"phoneNumber"`
	Months          int       `json:"months" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
