package model

import (
	"time"

	"github.com/google/uuid"
)

// PlanHistory records the subscription tier active for a (user, restaurant)
// pair. Read-only here: the billing module owns it. The newest row wins.
type PlanHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_plan_user_restaurant"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index:idx_plan_user_restaurant"`
	PlanType     string    `gorm:"not null"` // BASIC | STANDARD | PRO
	CreatedAt    time.Time
}

func (PlanHistory) TableName() string { return "plan_history" }
