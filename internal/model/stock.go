package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock is one warehouse row, scoped to a restaurant. Title equals the
// ingredient name it backs — that string is the join key the ledger uses.
// Volume must never go negative; the ledger enforces this inside the
// mutation transaction.
type Stock struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index:idx_stock_restaurant_title"`
	Title        string    `gorm:"not null;index:idx_stock_restaurant_title"`
	Category     string

	Volume decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	Unit   string          `gorm:"not null"` // kg | g | l | ml | pcs
	// PieceVolume / PieceUnit describe one piece when Unit is pcs
	// (a bottle of 0.5 l, a bag of 2 kg, …).
	PieceVolume decimal.Decimal `gorm:"column:pc_volume;type:decimal(7,2)"`
	PieceUnit   string          `gorm:"column:pc_unit"`

	ReorderLimit   decimal.Decimal `gorm:"type:decimal(7,2)"`
	ExpirationDate *time.Time
	StockStatus    string `gorm:"not null;default:'OK'"` // derived, advisory only

	TvaPercent    decimal.Decimal `gorm:"type:decimal(5,2)"`
	PriceWoutTva  decimal.Decimal `gorm:"type:decimal(10,2)"`
	PriceWithTva  decimal.Decimal `gorm:"type:decimal(10,2)"`
	PaymentMethod string
	InvoiceNumber string
	SuplierID     *uuid.UUID `gorm:"type:uuid"`
	SuplierName   string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Stock) TableName() string { return "stocks" }

// ComputeStatus derives the advisory stock level at the given instant.
// Expiration wins over volume thresholds.
func (s *Stock) ComputeStatus(now time.Time) string {
	if s.ExpirationDate != nil && s.ExpirationDate.Before(now) {
		return StockStatusExpired
	}
	if s.Volume.LessThanOrEqual(s.ReorderLimit) {
		return StockStatusCritical
	}
	if s.Volume.LessThanOrEqual(s.ReorderLimit.Mul(decimal.NewFromInt(2))) {
		return StockStatusLow
	}
	return StockStatusOK
}

// BeforeSave keeps the stored advisory status in sync with the volume.
func (s *Stock) BeforeSave(*gorm.DB) error {
	s.StockStatus = s.ComputeStatus(time.Now())
	return nil
}
