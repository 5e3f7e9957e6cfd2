package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an immutable ledger entry against an order, optionally allocated
// to one of its installments. Payments are never updated or deleted.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstallmentID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentType   string          `gorm:"type:varchar(50);not null"` // cash, transfer, card, ...
	PaidAt        time.Time       `gorm:"not null"`
	CreatedAt     time.Time

	Order       *Order       `gorm:"foreignKey:OrderID"`
	Installment *Installment `gorm:"foreignKey:InstallmentID"`
}
