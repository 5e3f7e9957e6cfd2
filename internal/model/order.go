package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle states. Draft orders accept detail lines; Confirm moves the
// order to Pending and freezes its line set.
const (
	OrderStatusDraft     = "Draft"
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Payment conditions.
const (
	PaymentConditionCash   = "Cash"
	PaymentConditionCredit = "Credit"
)

// Payment states, shared by Order and Installment.
const (
	PaymentStatePending = "Pending"
	PaymentStatePartial = "Partial"
	PaymentStatePaid    = "Paid"
)

// Order is the header of a customer order. TotalAmount is always the exact sum
// of its detail line totals; AmountPaid is always the exact sum of its payments.
type Order struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status           string          `gorm:"type:varchar(20);not null;default:'Draft';index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentCondition string          `gorm:"type:varchar(20);not null"` // Cash | Credit
	AmountPaid       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentState     string          `gorm:"type:varchar(20);not null;default:'Pending';index"`
	ClientID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Client       *Client       `gorm:"foreignKey:ClientID"`
	User         *User         `gorm:"foreignKey:UserID"`
	Details      []OrderDetail `gorm:"foreignKey:OrderID"`
	Installments []Installment `gorm:"foreignKey:OrderID"`
	Payments     []Payment     `gorm:"foreignKey:OrderID"`
}

// OrderDetail is one product line on an order. UnitPrice is a snapshot of the
// product's sale price at the moment the line was added and never changes.
type OrderDetail struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Product         *Product         `gorm:"foreignKey:ProductID"`
	ProductionOrder *ProductionOrder `gorm:"foreignKey:OrderDetailID"`
}

// LineTotal returns UnitPrice × Quantity.
func (d *OrderDetail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
