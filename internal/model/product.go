package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu item. PrepZone decides kitchen vs bar routing and whether
// doneness is legal; Ingredients is the bill of materials consumed per
// ordered unit.
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"not null"`
	Category     string
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrepZone     string          `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Ingredients []ProductIngredient `gorm:"foreignKey:ProductID"`
}

// ProductIngredient is one BOM line: how much of an ingredient a single
// ordered unit of the product consumes. Quantity is expressed in the
// canonical base unit (grams-equivalent).
type ProductIngredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

// Ingredient is a recipe component. Name doubles as the join key into the
// stock table (stock rows carry the ingredient name as their title).
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
