package repository

import (
	"context"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRepository reads the subscription tier for a (user, restaurant) pair.
// The billing module owns plan_history; this engine only consults it to
// decide whether stock deduction is active.
type PlanRepository interface {
	CurrentPlan(ctx context.Context, userID, restaurantID uuid.UUID) (*model.PlanHistory, error)
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) CurrentPlan(ctx context.Context, userID, restaurantID uuid.UUID) (*model.PlanHistory, error) {
	var p model.PlanHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
