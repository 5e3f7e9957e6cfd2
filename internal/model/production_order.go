package model

import (
	"time"

	"github.com/google/uuid"
)

// Production order states.
const (
	ProductionStatusPending    = "Pending"
	ProductionStatusInProgress = "InProgress"
	ProductionStatusCompleted  = "Completed"
)

// ProductionOrder tracks the manufacture of one order line. Exactly one per
// OrderDetail — enforced by the unique index and checked by the service.
type ProductionOrder struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderDetailID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending';index"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EstimatedDate time.Time `gorm:"type:date;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	OrderDetail *OrderDetail `gorm:"foreignKey:OrderDetailID"`
}
