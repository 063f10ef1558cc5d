package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a single line placed against a reservation. Title and UnitPrice
// are snapshots taken at creation time — they are never recomputed from the
// live product, so later menu edits cannot change what the guest pays.
type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`

	Title     string          `gorm:"not null"` // product name at order time
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"` // UnitPrice × Quantity
	Status    string          `gorm:"not null;default:'PENDING'"`

	Course         *string // e.g. FIRST | SECOND — serving order hint for the kitchen
	Doneness       *string // only legal for GRILL / FISH / HOT products
	CreationNotice *string
	DeletionNotice *string

	ReadyAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"` // cancellations soft-delete, preserving the audit trail

	Product     *Product     `gorm:"foreignKey:ProductID"`
	Reservation *Reservation `gorm:"foreignKey:ReservationID"`
}

// Terminal reports whether no further status transitions are allowed.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
