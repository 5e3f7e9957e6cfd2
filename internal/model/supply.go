package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supply is a raw material consumed by production. Stock is decimal because
// supplies are measured (meters, kilograms), not counted.
type Supply struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	UnitMeasure string          `gorm:"type:varchar(20)"`
	Stock       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SupplyMovement records each change to a supply's stock. ReferenceID points to
// the originating production order for EXIT movements written during
// consumption.
type SupplyMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null"` // ENTRY | EXIT | ADJUSTMENT
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid;index"`
	Reason      string
	CreatedAt   time.Time

	Supply *Supply `gorm:"foreignKey:SupplyID"`
}
