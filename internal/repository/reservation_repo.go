package repository

import (
	"context"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationRepository reads reservations and the denormalized board
// aggregate. The reservation module owns writes.
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)

	// FindForBoard loads reservations with waiter, tables and live (non
	// soft-deleted) orders including each order's product — everything the
	// realtime board snapshot needs, in one read.
	FindForBoard(ctx context.Context, ids []uuid.UUID) ([]model.Reservation, error)
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) ReservationRepository { return &reservationRepo{db: db} }

func (r *reservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Waiter").
		Preload("Tables").
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) FindForBoard(ctx context.Context, ids []uuid.UUID) ([]model.Reservation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Waiter").
		Preload("Tables").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.created_at ASC")
		}).
		Preload("Orders.Product").
		Where("id IN ?", ids).
		Find(&reservations).Error
	return reservations, err
}
