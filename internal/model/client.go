package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer that places orders. CI is the national id used to
// address clients in text commands.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CI        string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"index"`
	Phone     string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
