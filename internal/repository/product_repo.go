package repository

import (
	"context"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository resolves menu products together with their ingredient
// bill of materials. Read-only in this engine: the menu module owns writes.
type ProductRepository interface {
	// FindByIDsWithBOM batch-loads the given products with their non-deleted
	// BOM lines and ingredient names resolved. An empty id list returns an
	// empty slice without touching the database.
	FindByIDsWithBOM(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) FindByIDsWithBOM(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}
