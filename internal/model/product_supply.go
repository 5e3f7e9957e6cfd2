package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSupply is one bill-of-materials edge: building one unit of Product
// consumes RequiredAmount of Supply. The (product, supply) pair is unique.
type ProductSupply struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bom_product_supply"`
	SupplyID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bom_product_supply"`
	RequiredAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Supply  *Supply  `gorm:"foreignKey:SupplyID"`
}

// TableName overrides GORM's pluralization (product_supplies → product_supplies_bom).
func (ProductSupply) TableName() string { return "product_supplies_bom" }
