package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService coordinates the order lifecycle: persist the order rows first,
// then run stock bookkeeping through the ledger, then fan out notifications
// and board snapshots. Orders are the source of truth — a stock failure never
// rolls an order back.
type OrderService interface {
	Create(ctx context.Context, actor Actor, reservationID uuid.UUID, req dto.CreateOrdersRequest) (*dto.OrdersResponse, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) (*dto.OrdersResponse, error)
	Update(ctx context.Context, actor Actor, orderID uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status string) (*dto.OrderResponse, error)
	Delete(ctx context.Context, actor Actor, req dto.DeleteOrdersRequest) error
}

type orderService struct {
	orders       repository.OrderRepository
	products     repository.ProductRepository
	reservations repository.ReservationRepository
	plans        repository.PlanRepository
	ledger       *StockLedger
	notifier     Notifier
	publisher    Publisher
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	reservations repository.ReservationRepository,
	plans repository.PlanRepository,
	ledger *StockLedger,
	notifier Notifier,
	publisher Publisher,
) OrderService {
	return &orderService{
		orders:       orders,
		products:     products,
		reservations: reservations,
		plans:        plans,
		ledger:       ledger,
		notifier:     notifier,
		publisher:    publisher,
	}
}

func (s *orderService) Create(ctx context.Context, actor Actor, reservationID uuid.UUID, req dto.CreateOrdersRequest) (*dto.OrdersResponse, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	products, err := s.loadProducts(ctx, req.Orders)
	if err != nil {
		return nil, err
	}

	orders := make([]*model.Order, 0, len(req.Orders))
	for _, line := range req.Orders {
		productID := uuid.MustParse(line.ProductID)
		product := products[productID]

		if line.Doneness != nil && !model.ZoneAllowsDoneness(product.PrepZone) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDoneness, product.Title)
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		orders = append(orders, &model.Order{
			ReservationID:  reservation.ID,
			ProductID:      product.ID,
			Title:          product.Title,
			Quantity:       line.Quantity,
			UnitPrice:      product.Price,
			Price:          product.Price.Mul(qty),
			Status:         model.OrderStatusPreparing,
			Course:         line.Course,
			Doneness:       line.Doneness,
			CreationNotice: line.CreationNotice,
		})
	}

	if err := s.orders.CreateBatch(ctx, orders); err != nil {
		return nil, err
	}

	if s.stockDeductionEnabled(ctx, actor, reservation.RestaurantID) {
		deltas := make([]StockDelta, 0)
		for _, o := range orders {
			deltas = append(deltas, consumptionDeltas(products[o.ProductID], o.Quantity)...)
		}
		if err := s.ledger.TransactionalBatch(ctx, reservation.RestaurantID, MergeDeltas(deltas)); err != nil {
			if surfaceStockError(actor.Role) {
				return nil, err
			}
			log.Warn().
				Str("reservation_id", reservation.ID.String()).
				Str("role", actor.Role).
				Err(err).
				Msg("orders: stock deduction failed, order kept")
		}
	}

	s.notifyNewOrders(ctx, reservation, products, orders)

	ids := make([]uuid.UUID, 0, len(orders))
	resp := &dto.OrdersResponse{Data: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		ids = append(ids, o.ID)
		resp.Data = append(resp.Data, orderToResponse(o))
	}
	s.publisher.PublishOrders(ctx, ids)
	return resp, nil
}

// ListByReservation returns the reservation's live orders oldest first.
func (s *orderService) ListByReservation(ctx context.Context, reservationID uuid.UUID) (*dto.OrdersResponse, error) {
	if _, err := s.reservations.FindByID(ctx, reservationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	orders, err := s.orders.FindByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OrdersResponse{Data: make([]dto.OrderResponse, 0, len(orders))}
	for i := range orders {
		resp.Data = append(resp.Data, orderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *orderService) Update(ctx context.Context, actor Actor, orderID uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if req.Doneness != nil && (order.Product == nil || !model.ZoneAllowsDoneness(order.Product.PrepZone)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDoneness, order.Title)
	}

	if req.Course != nil {
		order.Course = req.Course
	}
	if req.Doneness != nil {
		order.Doneness = req.Doneness
	}
	if req.CreationNotice != nil {
		order.CreationNotice = req.CreationNotice
	}
	if req.DeletionNotice != nil {
		order.DeletionNotice = req.DeletionNotice
	}

	qtyDiff := 0
	if req.Quantity != nil && *req.Quantity != order.Quantity {
		qtyDiff = *req.Quantity - order.Quantity
		order.Quantity = *req.Quantity
		// Total recomputed from the stored snapshot, never the live product.
		order.Price = order.UnitPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	restaurantID := actor.RestaurantID
	if order.Reservation != nil {
		restaurantID = order.Reservation.RestaurantID
	}

	if qtyDiff != 0 && order.Product != nil && s.stockDeductionEnabled(ctx, actor, restaurantID) {
		deltas := consumptionDeltas(order.Product, qtyDiff)
		if err := s.ledger.TransactionalBatch(ctx, restaurantID, MergeDeltas(deltas)); err != nil {
			if surfaceStockError(actor.Role) {
				return nil, err
			}
			log.Warn().
				Str("order_id", order.ID.String()).
				Str("role", actor.Role).
				Err(err).
				Msg("orders: stock adjustment failed, quantity change kept")
		}
	}

	s.publisher.PublishOrders(ctx, []uuid.UUID{order.ID})
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status string) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, status)
	}

	order.Status = status
	if status == model.OrderStatusReady {
		now := time.Now()
		order.ReadyAt = &now
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if status == model.OrderStatusReady {
		s.notifyOrderReady(ctx, order)
	}

	s.publisher.PublishOrders(ctx, []uuid.UUID{order.ID})
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) Delete(ctx context.Context, actor Actor, req dto.DeleteOrdersRequest) error {
	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, raw)
		}
		ids = append(ids, id)
	}

	orders, err := s.orders.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrOrderNotFound
	}

	// Restock is best-effort and independent per ingredient: one missing
	// stock row must not block returning the rest, and the soft delete below
	// happens regardless.
	restaurantID := s.restaurantOf(&orders[0], actor)
	if s.stockDeductionEnabled(ctx, actor, restaurantID) {
		deltas := make([]StockDelta, 0)
		for i := range orders {
			o := &orders[i]
			if o.Product == nil {
				continue
			}
			for _, d := range consumptionDeltas(o.Product, o.Quantity) {
				deltas = append(deltas, StockDelta{Ingredient: d.Ingredient, Quantity: d.Quantity.Neg()})
			}
		}
		s.ledger.BestEffortBatch(ctx, restaurantID, deltas)
	}

	found := make([]uuid.UUID, 0, len(orders))
	for i := range orders {
		found = append(found, orders[i].ID)
	}
	if err := s.orders.SoftDelete(ctx, found, req.DeletionNotice); err != nil {
		return err
	}

	s.publisher.PublishOrders(ctx, found)
	return nil
}

// loadProducts batch-resolves the distinct products of the request and
// verifies every line points at an existing one.
func (s *orderService) loadProducts(ctx context.Context, lines []dto.OrderLineRequest) (map[uuid.UUID]*model.Product, error) {
	seen := make(map[uuid.UUID]bool, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	products, err := s.products.FindByIDsWithBOM(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
	}
	return byID, nil
}

// consumptionDeltas expands a product's BOM into negative stock deltas for
// the given ordered quantity. A negative quantity yields positive deltas
// (stock returned).
func consumptionDeltas(product *model.Product, quantity int) []StockDelta {
	qty := decimal.NewFromInt(int64(quantity))
	deltas := make([]StockDelta, 0, len(product.Ingredients))
	for _, ing := range product.Ingredients {
		if ing.Ingredient == nil {
			continue
		}
		deltas = append(deltas, StockDelta{
			Ingredient: ing.Ingredient.Name,
			Quantity:   ing.Quantity.Mul(qty).Neg(),
		})
	}
	return deltas
}

// stockDeductionEnabled decides whether stock bookkeeping runs for this
// request. Guest orders always deduct; staff orders only on the PRO plan.
// No plan history means BASIC, which means off.
func (s *orderService) stockDeductionEnabled(ctx context.Context, actor Actor, restaurantID uuid.UUID) bool {
	if actor.Role == model.RoleUser {
		return true
	}
	plan, err := s.plans.CurrentPlan(ctx, actor.ID, restaurantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("user_id", actor.ID.String()).Msg("orders: plan lookup failed")
		}
		return false
	}
	return plan.PlanType == model.PlanPro
}

func (s *orderService) restaurantOf(o *model.Order, actor Actor) uuid.UUID {
	if o.Reservation != nil {
		return o.Reservation.RestaurantID
	}
	return actor.RestaurantID
}

func (s *orderService) notifyNewOrders(ctx context.Context, reservation *model.Reservation, products map[uuid.UUID]*model.Product, orders []*model.Order) {
	existDrinks, onlyDrinks := drinkFlags(products, orders)

	staffRole := model.RoleCook
	if onlyDrinks {
		staffRole = model.RoleBarman
	}
	n := ReservationOrderNotification{
		StaffRole:    staffRole,
		WaiterID:     reservation.WaiterID,
		TableNames:   joinTableNames(reservation.Tables),
		RestaurantID: reservation.RestaurantID,
		ExistDrinks:  existDrinks,
		OnlyDrinks:   onlyDrinks,
	}
	if err := s.notifier.NotifyReservationOrders(ctx, n); err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID.String()).Msg("orders: notification enqueue failed")
	}
}

func (s *orderService) notifyOrderReady(ctx context.Context, order *model.Order) {
	if order.Reservation == nil {
		return
	}
	isDrink := order.Product != nil && model.IsDrinkZone(order.Product.PrepZone)
	n := ReservationOrderNotification{
		StaffRole:    model.RoleWaiter,
		WaiterID:     order.Reservation.WaiterID,
		TableNames:   joinTableNames(order.Reservation.Tables),
		RestaurantID: order.Reservation.RestaurantID,
		ExistDrinks:  isDrink,
		OnlyDrinks:   isDrink,
	}
	if err := s.notifier.NotifyReservationOrders(ctx, n); err != nil {
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("orders: ready notification enqueue failed")
	}
}

func drinkFlags(products map[uuid.UUID]*model.Product, orders []*model.Order) (existDrinks, onlyDrinks bool) {
	onlyDrinks = len(orders) > 0
	for _, o := range orders {
		p := products[o.ProductID]
		if p != nil && model.IsDrinkZone(p.PrepZone) {
			existDrinks = true
		} else {
			onlyDrinks = false
		}
	}
	return existDrinks, existDrinks && onlyDrinks
}

func orderToResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:             o.ID.String(),
		ReservationID:  o.ReservationID.String(),
		ProductID:      o.ProductID.String(),
		Title:          o.Title,
		Quantity:       o.Quantity,
		UnitPrice:      o.UnitPrice,
		Price:          o.Price,
		Status:         o.Status,
		Course:         o.Course,
		Doneness:       o.Doneness,
		CreationNotice: o.CreationNotice,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	if o.ReadyAt != nil {
		t := o.ReadyAt.Format(time.RFC3339)
		resp.ReadyAt = &t
	}
	return resp
}
