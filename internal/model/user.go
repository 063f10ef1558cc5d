package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a minimal projection of the auth service's account table — enough
// to resolve waiter names for the board snapshot. Writes happen elsewhere.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
