package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Installment is one scheduled partial payment of a credit order. The full set
// for an order is created in a single batch when the order is confirmed; the
// last installment absorbs the division rounding remainder so the set always
// sums to the order total exactly.
type Installment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number     int             `gorm:"not null"` // 1..N
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate    time.Time       `gorm:"type:date;not null;index"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	State      string          `gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt  time.Time

	Order    *Order    `gorm:"foreignKey:OrderID"`
	Payments []Payment `gorm:"foreignKey:InstallmentID"`
}
