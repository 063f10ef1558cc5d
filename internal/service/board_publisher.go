package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/realtime"
	"github.com/Shunea/be-easyreserv-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EventReservationBoard is the single event type pushed to displays.
const EventReservationBoard = "reservation.board"

// BoardPublisher rebuilds reservation board snapshots and broadcasts them to
// the owning restaurant's room. Every push is the full current state of one
// reservation, so displays never have to reconcile diffs.
type BoardPublisher struct {
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	hub          *realtime.Hub
}

func NewBoardPublisher(orders repository.OrderRepository, reservations repository.ReservationRepository, hub *realtime.Hub) *BoardPublisher {
	return &BoardPublisher{orders: orders, reservations: reservations, hub: hub}
}

// PublishOrders refreshes the board of every reservation the given orders
// belong to. Runs after the mutation is committed, so failures are logged
// and never propagated.
func (p *BoardPublisher) PublishOrders(ctx context.Context, orderIDs []uuid.UUID) {
	if len(orderIDs) == 0 {
		return
	}
	reservationIDs, err := p.orders.ReservationIDs(ctx, orderIDs)
	if err != nil {
		log.Error().Err(err).Msg("board publisher: failed to resolve reservations")
		return
	}
	reservations, err := p.reservations.FindForBoard(ctx, reservationIDs)
	if err != nil {
		log.Error().Err(err).Msg("board publisher: failed to load board data")
		return
	}

	for i := range reservations {
		res := &reservations[i]
		board := buildBoard(res)
		payload, err := json.Marshal(board)
		if err != nil {
			log.Error().Err(err).Str("reservation_id", res.ID.String()).Msg("board publisher: marshal failed")
			continue
		}
		p.hub.Broadcast(res.RestaurantID, realtime.Event{Type: EventReservationBoard, Payload: payload})
	}
}

// Board returns the current snapshot for one reservation, used to bootstrap a
// display before it starts receiving pushes.
func (p *BoardPublisher) Board(ctx context.Context, reservationID uuid.UUID) (*dto.ReservationBoard, error) {
	reservations, err := p.reservations.FindForBoard(ctx, []uuid.UUID{reservationID})
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	board := buildBoard(&reservations[0])
	return &board, nil
}

func buildBoard(res *model.Reservation) dto.ReservationBoard {
	board := dto.ReservationBoard{
		ReservationID: res.ID.String(),
		ClientName:    res.ClientName,
		TableNames:    joinTableNames(res.Tables),
		Orders:        make([]dto.BoardOrder, 0, len(res.Orders)),
	}
	if res.Waiter != nil {
		board.WaiterName = res.Waiter.Name
	}
	for i := range res.Orders {
		o := &res.Orders[i]
		bo := dto.BoardOrder{
			ID:        o.ID.String(),
			Status:    o.Status,
			Title:     o.Title,
			Quantity:  o.Quantity,
			UnitPrice: o.UnitPrice,
			Price:     o.Price,
			Course:    o.Course,
			Doneness:  o.Doneness,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
		}
		if o.Product != nil {
			bo.PrepZone = o.Product.PrepZone
			bo.Category = o.Product.Category
		}
		if o.ReadyAt != nil {
			t := o.ReadyAt.Format(time.RFC3339)
			bo.ReadyAt = &t
		}
		board.Orders = append(board.Orders, bo)
	}
	return board
}

func joinTableNames(tables []model.Table) string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// IsNotFound reports whether err is a missing-record error from either the
// repository layer or the domain sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
