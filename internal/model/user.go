package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the employee that registers an order.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CI        string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"index"`
	Role      string    `gorm:"type:varchar(30);not null;default:'seller'"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
