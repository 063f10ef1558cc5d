package dto

import "github.com/shopspring/decimal"

// BoardOrder is one order line inside a reservation board snapshot.
type BoardOrder struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Title     string          `json:"title"`
	PrepZone  string          `json:"prep_zone"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
	Course    *string         `json:"course,omitempty"`
	Doneness  *string         `json:"doneness,omitempty"`
	CreatedAt string          `json:"created_at"`
	ReadyAt   *string         `json:"ready_at,omitempty"`
}

// ReservationBoard is the denormalized aggregate pushed to kitchen/bar/waiter
// displays. Subscribers treat each push as a full-state snapshot, not a diff.
type ReservationBoard struct {
	ReservationID string       `json:"reservation_id"`
	ClientName    string       `json:"client_name"`
	WaiterName    string       `json:"waiter_name"`
	TableNames    string       `json:"table_names"` // comma-joined
	Orders        []BoardOrder `json:"orders"`
}
