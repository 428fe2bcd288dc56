package models

import (
	"time"
)

type PaymentOrderStatus string

const (
	PaymentOrderPending   PaymentOrderStatus = "PENDING"
	PaymentOrderCompleted PaymentOrderStatus = "COMPLETED"
	PaymentOrderExpired   PaymentOrderStatus = "EXPIRED"
	PaymentOrderFailed    PaymentOrderStatus = "FAILED"
)

// IsTerminal indique si le statut n'autorise plus aucune transition
func (s PaymentOrderStatus) IsTerminal() bool {
	return s == PaymentOrderCompleted || s == PaymentOrderExpired || s == PaymentOrderFailed
}

type PaymentOrder struct {
	ID              string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MerchantOrderID string             `json:"merchantOrderId" gorm:"type:varchar(100);uniqueIndex;not null"`
	UserID          *string            `json:"userId" gorm:"type:uuid"`
	Amount          int                `json:"amount" gorm:"not null"`
	Months          int                `json:"months" gorm:"not null"`
	PaymentMethod   string             `json:"paymentMethod" gorm:"type:varchar(10)"`
	Status          PaymentOrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Reference       string             `json:"reference"`
	PaidAt          *time.Time         `json:"paidAt"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
