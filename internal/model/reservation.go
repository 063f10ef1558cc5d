package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation aggregates the orders of one seated party. Owned by the
// reservation module; this engine only reads it for plan lookup and for the
// realtime board snapshot.
type Reservation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	WaiterID     uuid.UUID `gorm:"type:uuid;not null"`
	ClientName   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Waiter *User   `gorm:"foreignKey:WaiterID"`
	Tables []Table `gorm:"many2many:reservation_tables"`
	Orders []Order `gorm:"foreignKey:ReservationID"`
}

// Table is a physical restaurant table.
type Table struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Table) TableName() string { return "tables" }
