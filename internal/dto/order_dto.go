package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrderLineRequest is one line of a reservation order submission.
type OrderLineRequest struct {
	ProductID      string  `json:"product_id" validate:"required,uuid"`
	Quantity       int     `json:"quantity"   validate:"required,min=1"`
	Course         *string `json:"course"     validate:"omitempty,oneof=FIRST SECOND DESSERT"`
	Doneness       *string `json:"doneness"   validate:"omitempty,oneof=RARE MEDIUM_RARE MEDIUM MEDIUM_WELL WELL_DONE"`
	CreationNotice *string `json:"creation_notice"`
}

type CreateOrdersRequest struct {
	Orders []OrderLineRequest `json:"orders" validate:"required,min=1,dive"`
}

// UpdateOrderRequest is a partial order edit. A request carrying only the
// notice fields never touches stock.
type UpdateOrderRequest struct {
	Quantity       *int    `json:"quantity" validate:"omitempty,min=1"`
	Course         *string `json:"course"   validate:"omitempty,oneof=FIRST SECOND DESSERT"`
	Doneness       *string `json:"doneness" validate:"omitempty,oneof=RARE MEDIUM_RARE MEDIUM MEDIUM_WELL WELL_DONE"`
	CreationNotice *string `json:"creation_notice"`
	DeletionNotice *string `json:"deletion_notice"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PREPARING READY COMPLETED CANCELLED"`
}

type DeleteOrdersRequest struct {
	OrderIDs       []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
	DeletionNotice *string  `json:"deletion_notice"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderResponse struct {
	ID             string          `json:"id"`
	ReservationID  string          `json:"reservation_id"`
	ProductID      string          `json:"product_id"`
	Title          string          `json:"title"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Price          decimal.Decimal `json:"price"`
	Status         string          `json:"status"`
	Course         *string         `json:"course,omitempty"`
	Doneness       *string         `json:"doneness,omitempty"`
	CreationNotice *string         `json:"creation_notice,omitempty"`
	ReadyAt        *string         `json:"ready_at,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type OrdersResponse struct {
	Data []OrderResponse `json:"data"`
}
