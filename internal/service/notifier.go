package service

import (
	"context"

	"github.com/google/uuid"
)

// ReservationOrderNotification tells staff that orders arrived for a
// reservation (StaffRole COOK/BARMAN) or that an order is ready to serve
// (StaffRole WAITER). ExistDrinks/OnlyDrinks let the bar skip kitchen-only
// submissions and vice versa.
type ReservationOrderNotification struct {
	StaffRole    string    `json:"staff_role"`
	WaiterID     uuid.UUID `json:"waiter_id"`
	TableNames   string    `json:"table_names"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	ExistDrinks  bool      `json:"exist_drinks"`
	OnlyDrinks   bool      `json:"only_drinks"`
}

// Notifier hands notifications to the background delivery pipeline.
// Enqueueing is best-effort from the orchestrator's point of view: a failure
// is logged, never turned into a request error.
type Notifier interface {
	NotifyReservationOrders(ctx context.Context, n ReservationOrderNotification) error
}

// Publisher pushes refreshed board snapshots for the reservations the given
// orders belong to. Implementations must swallow their own errors — publishing
// runs after the data is already committed.
type Publisher interface {
	PublishOrders(ctx context.Context, orderIDs []uuid.UUID)
}
