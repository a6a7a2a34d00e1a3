package models

import (
	"strings"
	"time"
)

type Gateway string

const (
	GatewayRazorpay Gateway = "RAZORPAY"
	GatewayStripe   Gateway = "STRIPE"
)

// ParseGateway normalizes a caller supplied gateway name
func ParseGateway(name string) (Gateway, bool) {
	switch g := Gateway(strings.ToUpper(name)); g {
	case GatewayRazorpay, GatewayStripe:
		return g, true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// PaymentSession tracks one checkout attempt against exactly one gateway.
// SessionID, Gateway and ProviderReferenceID are write-once.
type PaymentSession struct {
	SessionID           string        `json:"sessionId" gorm:"primaryKey;type:varchar(64)"`
	UserID              string        `json:"userId" gorm:"type:varchar(128);index"`
	Gateway             Gateway       `json:"gateway" gorm:"type:varchar(20);not null"`
	Amount              float64       `json:"amount"`
	Currency            string        `json:"currency" gorm:"type:varchar(10)"`
	ProviderReferenceID string        `json:"providerReferenceId" gorm:"type:varchar(255)"`
	Status              PaymentStatus `json:"status" gorm:"type:varchar(20);index;not null"` // PENDING, PAID
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	PaidAt              *time.Time    `json:"paidAt,omitempty"`
}

func (PaymentSession) TableName() string {
	return "payment_sessions"
}

// IsPaid reports whether the gateway has confirmed payment
func (s *PaymentSession) IsPaid() bool {
	return s.Status == PaymentStatusPaid
}
