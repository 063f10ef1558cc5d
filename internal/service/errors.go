package service

import "errors"

// Domain errors surfaced by the order-inventory engine. Handlers map these
// to 400 responses; anything else is treated as internal.
var (
	ErrProductNotFound         = errors.New("product not found")
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrStockNotFound           = errors.New("no stock row for ingredient")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInvalidDoneness         = errors.New("doneness is only allowed for grill, fish and hot products")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)
