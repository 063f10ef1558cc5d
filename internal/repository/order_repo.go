package repository

import (
	"context"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the data access contract for order rows.
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []*model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error)

	// FindByReservation lists a reservation's live orders oldest first.
	FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]model.Order, error)

	Save(ctx context.Context, o *model.Order) error

	// SoftDelete stamps the deletion notice and soft-deletes every order in
	// one statement. Orders are never hard-deleted: the rows stay behind the
	// deleted_at marker as an audit trail.
	SoftDelete(ctx context.Context, ids []uuid.UUID, notice *string) error

	// ReservationIDs resolves the distinct reservations the given orders
	// belong to, including soft-deleted orders (the board must refresh after
	// a cancellation).
	ReservationIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateBatch(ctx context.Context, orders []*model.Order) error {
	return r.db.WithContext(ctx).Create(orders).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Product.Ingredients.Ingredient").
		Preload("Reservation").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Product.Ingredients.Ingredient").
		Preload("Reservation").
		Where("id IN ?", ids).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Save(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) SoftDelete(ctx context.Context, ids []uuid.UUID, notice *string) error {
	if len(ids) == 0 {
		return nil
	}
	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("id IN ?", ids)
	if notice != nil {
		if err := q.Update("deletion_notice", *notice).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Delete(&model.Order{}, "id IN ?", ids).Error
}

func (r *orderRepo) ReservationIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Order{}).
		Where("id IN ?", orderIDs).
		Distinct().
		Pluck("reservation_id", &ids).Error
	return ids, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
