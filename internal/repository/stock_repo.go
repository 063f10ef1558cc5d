package repository

import (
	"context"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository is the data access contract for warehouse rows. Services
// depend on this interface, not on the concrete GORM implementation, enabling
// clean unit testing via stubs.
type StockRepository interface {
	// FindForUpdateTx loads the stock row backing an ingredient name inside
	// the caller's transaction, taking a FOR UPDATE row lock so concurrent
	// mutators of the same ingredient serialize.
	FindForUpdateTx(tx *gorm.DB, restaurantID uuid.UUID, title string) (*model.Stock, error)

	// SaveTx persists a staged row inside the caller's transaction.
	SaveTx(tx *gorm.DB, s *model.Stock) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter dto.StockFilter) ([]model.Stock, int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindForUpdateTx(tx *gorm.DB, restaurantID uuid.UUID, title string) (*model.Stock, error) {
	var s model.Stock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("restaurant_id = ? AND title = ?", restaurantID, title).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) SaveTx(tx *gorm.DB, s *model.Stock) error {
	return tx.Save(s).Error
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) List(ctx context.Context, restaurantID uuid.UUID, filter dto.StockFilter) ([]model.Stock, int64, error) {
	var rows []model.Stock
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Stock{}).Where("restaurant_id = ?", restaurantID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("stock_status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("title ASC").Limit(filter.Limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
