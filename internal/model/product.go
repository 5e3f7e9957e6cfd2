package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types shared by the product and supply stock ledgers.
// ADJUSTMENT sets the balance to the movement quantity (absolute set, not a
// delta) — inherited business rule, see the stock services.
const (
	MovementEntry      = "ENTRY"
	MovementExit       = "EXIT"
	MovementAdjustment = "ADJUSTMENT"
)

// Product is a finished, sellable good. Stock is counted in whole units.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	SalePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Supplies []ProductSupply `gorm:"foreignKey:ProductID"`
}

// ProductMovement records each change to a product's stock. Rows are immutable
// history; the product balance is updated in the same transaction.
type ProductMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(10);not null"` // ENTRY | EXIT | ADJUSTMENT
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	ReferenceID *uuid.UUID `gorm:"type:uuid;index"`
	Reason      string
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
