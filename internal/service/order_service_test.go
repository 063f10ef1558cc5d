package service

import (
	"context"
	"testing"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/unit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders       *stubOrderRepo
	stocks       *stubStockRepo
	plans        *stubPlanRepo
	notifier     *stubNotifier
	publisher    *stubPublisher
	reservation  *model.Reservation
	restaurantID uuid.UUID
	svc          OrderService
}

func newOrderFixture(t *testing.T, stocks *stubStockRepo, plan *model.PlanHistory, products ...*model.Product) *orderFixture {
	t.Helper()
	restaurantID := uuid.New()
	if len(stocks.rows) > 0 {
		for _, row := range stocks.rows {
			restaurantID = row.RestaurantID
			break
		}
	}
	reservation := newReservation(restaurantID, "T1", "T2")

	f := &orderFixture{
		orders:       newStubOrderRepo(),
		stocks:       stocks,
		plans:        &stubPlanRepo{plan: plan},
		notifier:     &stubNotifier{},
		publisher:    &stubPublisher{},
		reservation:  reservation,
		restaurantID: restaurantID,
	}
	f.svc = NewOrderService(
		f.orders,
		newStubProductRepo(products...),
		newStubReservationRepo(reservation),
		f.plans,
		NewStockLedger(stocks, 5*time.Second),
		f.notifier,
		f.publisher,
	)
	return f
}

func guest() Actor {
	return Actor{ID: uuid.New(), Role: model.RoleUser}
}

func staff(role string, restaurantID uuid.UUID) Actor {
	return Actor{ID: uuid.New(), Role: role, RestaurantID: restaurantID}
}

func createRequest(lines ...dto.OrderLineRequest) dto.CreateOrdersRequest {
	return dto.CreateOrdersRequest{Orders: lines}
}

func line(productID uuid.UUID, qty int) dto.OrderLineRequest {
	return dto.OrderLineRequest{ProductID: productID.String(), Quantity: qty}
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreateGuestOrderDeductsStock(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(
		newStock(restaurantID, "beef", 10, unit.Kilogram),
		newStock(restaurantID, "potato", 5000, unit.Gram),
	)
	steak := newProduct(restaurantID, "Steak & Fries", model.ZoneGrill, 24.50,
		bomLine{name: "beef", qty: 300},
		bomLine{name: "potato", qty: 200},
	)
	f := newOrderFixture(t, stocks, nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 2)))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	order := resp.Data[0]
	assert.Equal(t, "Steak & Fries", order.Title)
	assert.Equal(t, model.OrderStatusPreparing, order.Status)
	assert.Equal(t, "24.5", order.UnitPrice.String())
	assert.Equal(t, "49", order.Price.String())

	// 2 × 300 g beef, 2 × 200 g potato
	assert.Equal(t, "9.4", stocks.volume("beef").String())
	assert.Equal(t, "4600", stocks.volume("potato").String())

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, model.RoleCook, f.notifier.sent[0].StaffRole)
	assert.Equal(t, "T1, T2", f.notifier.sent[0].TableNames)
	assert.False(t, f.notifier.sent[0].ExistDrinks)
	require.Len(t, f.publisher.published, 1)
}

func TestCreateStaffOrderSkipsStockOnBasicPlan(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, &model.PlanHistory{PlanType: model.PlanBasic}, steak)

	_, err := f.svc.Create(context.Background(), staff(model.RoleWaiter, restaurantID), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)

	assert.Equal(t, "10", stocks.volume("beef").String())
	assert.Len(t, f.orders.live, 1)
}

func TestCreateStaffOrderDeductsStockOnProPlan(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, &model.PlanHistory{PlanType: model.PlanPro}, steak)

	_, err := f.svc.Create(context.Background(), staff(model.RoleWaiter, restaurantID), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)

	assert.Equal(t, "9.7", stocks.volume("beef").String())
}

func TestCreateStockFailureSurfacesForElevatedRoles(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 0.1, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, &model.PlanHistory{PlanType: model.PlanPro}, steak)

	_, err := f.svc.Create(context.Background(), staff(model.RoleWaiter, restaurantID), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The order row itself survives: stock bookkeeping never rolls orders back.
	assert.Len(t, f.orders.live, 1)
	assert.Equal(t, "0.1", stocks.volume("beef").String())
}

func TestCreateStockFailureSilentForGuests(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 0.1, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	// Deduction failed silently, nothing was drained.
	assert.Equal(t, "0.1", stocks.volume("beef").String())
}

func TestCreateRejectsDonenessOutsideGrillFishHot(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo()
	salad := newProduct(restaurantID, "Caesar", model.ZoneCold, 12)
	f := newOrderFixture(t, stocks, nil, salad)

	doneness := "MEDIUM"
	req := createRequest(dto.OrderLineRequest{ProductID: salad.ID.String(), Quantity: 1, Doneness: &doneness})

	_, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, req)
	require.ErrorIs(t, err, ErrInvalidDoneness)
	assert.Empty(t, f.orders.live)
}

func TestCreateUnknownProduct(t *testing.T) {
	f := newOrderFixture(t, newStubStockRepo(), nil)

	_, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(uuid.New(), 1)))
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateUnknownReservation(t *testing.T) {
	f := newOrderFixture(t, newStubStockRepo(), nil)

	_, err := f.svc.Create(context.Background(), guest(), uuid.New(), createRequest(line(uuid.New(), 1)))
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreateBarOnlySubmissionNotifiesBarman(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newPieceStock(restaurantID, "wine", 10, 0.75, unit.Liter))
	wine := newProduct(restaurantID, "House Red", model.ZoneBar, 8, bomLine{name: "wine", qty: 750})
	f := newOrderFixture(t, stocks, nil, wine)

	_, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(wine.ID, 1)))
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, model.RoleBarman, f.notifier.sent[0].StaffRole)
	assert.True(t, f.notifier.sent[0].ExistDrinks)
	assert.True(t, f.notifier.sent[0].OnlyDrinks)
	assert.Equal(t, "9", stocks.volume("wine").String())
}

// ─── Update ──────────────────────────────────────────────────────────────────

func TestUpdateQuantityRecomputesPriceFromSnapshot(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 2)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)

	// The menu price changes after the order was placed.
	order := f.orders.live[orderID]
	order.Product = steak
	order.Reservation = f.reservation
	steak.Price = decimal.NewFromInt(99)

	qty := 5
	updated, err := f.svc.Update(context.Background(), guest(), orderID, dto.UpdateOrderRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "20", updated.UnitPrice.String())
	assert.Equal(t, "100", updated.Price.String(), "total must come from the stored snapshot, not the live product")

	// 2 already deducted at create, 3 more now.
	assert.Equal(t, "8.5", stocks.volume("beef").String())
}

func TestUpdateQuantityDecreaseRestoresStock(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 3)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)
	f.orders.live[orderID].Product = steak
	f.orders.live[orderID].Reservation = f.reservation

	qty := 1
	_, err = f.svc.Update(context.Background(), guest(), orderID, dto.UpdateOrderRequest{Quantity: &qty})
	require.NoError(t, err)

	// 3 × 300 g out at create, 2 × 300 g back in.
	assert.Equal(t, "9.7", stocks.volume("beef").String())
}

func TestUpdateNoticeOnlyNeverTouchesStock(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	f := newOrderFixture(t, stocks, nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)
	f.orders.live[orderID].Product = steak

	saves := stocks.saveCalls
	notice := "no salt please"
	updated, err := f.svc.Update(context.Background(), guest(), orderID, dto.UpdateOrderRequest{CreationNotice: &notice})
	require.NoError(t, err)

	assert.Equal(t, &notice, updated.CreationNotice)
	assert.Equal(t, saves, stocks.saveCalls)
}

func TestUpdateUnknownOrder(t *testing.T) {
	f := newOrderFixture(t, newStubStockRepo(), nil)
	qty := 2
	_, err := f.svc.Update(context.Background(), guest(), uuid.New(), dto.UpdateOrderRequest{Quantity: &qty})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

// ─── UpdateStatus ────────────────────────────────────────────────────────────

func TestUpdateStatusReadyStampsTimeAndNotifiesWaiter(t *testing.T) {
	restaurantID := uuid.New()
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20)
	f := newOrderFixture(t, newStubStockRepo(), nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)
	f.orders.live[orderID].Product = steak
	f.orders.live[orderID].Reservation = f.reservation
	f.notifier.sent = nil

	updated, err := f.svc.UpdateStatus(context.Background(), staff(model.RoleCook, restaurantID), orderID, model.OrderStatusReady)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusReady, updated.Status)
	require.NotNil(t, updated.ReadyAt)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, model.RoleWaiter, f.notifier.sent[0].StaffRole)
	assert.Equal(t, f.reservation.WaiterID, f.notifier.sent[0].WaiterID)
}

func TestUpdateStatusRejectsBackwardsTransition(t *testing.T) {
	restaurantID := uuid.New()
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20)
	f := newOrderFixture(t, newStubStockRepo(), nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)

	_, err = f.svc.UpdateStatus(context.Background(), guest(), orderID, model.OrderStatusPending)
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateStatusTerminalStatesAreFinal(t *testing.T) {
	restaurantID := uuid.New()
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20)
	f := newOrderFixture(t, newStubStockRepo(), nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)
	f.orders.live[orderID].Status = model.OrderStatusCancelled

	for _, next := range []string{model.OrderStatusPending, model.OrderStatusPreparing, model.OrderStatusReady, model.OrderStatusCompleted} {
		_, err := f.svc.UpdateStatus(context.Background(), guest(), orderID, next)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition, "CANCELLED -> %s", next)
	}
}

func TestUpdateStatusCancelReachableFromAnyActiveState(t *testing.T) {
	restaurantID := uuid.New()
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20)
	f := newOrderFixture(t, newStubStockRepo(), nil, steak)

	resp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1)))
	require.NoError(t, err)
	orderID := uuid.MustParse(resp.Data[0].ID)
	f.orders.live[orderID].Status = model.OrderStatusReady

	updated, err := f.svc.UpdateStatus(context.Background(), guest(), orderID, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, updated.Status)
}

// ─── Delete ──────────────────────────────────────────────────────────────────

func TestDeleteRestocksBestEffortAndSoftDeletes(t *testing.T) {
	restaurantID := uuid.New()
	stocks := newStubStockRepo(newStock(restaurantID, "beef", 10, unit.Kilogram))
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20, bomLine{name: "beef", qty: 300})
	ghost := newProduct(restaurantID, "Off-menu Special", model.ZoneHot, 15, bomLine{name: "saffron", qty: 2})
	f := newOrderFixture(t, stocks, nil, steak, ghost)

	steakResp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 2)))
	require.NoError(t, err)
	assert.Equal(t, "9.4", stocks.volume("beef").String())

	// The special's saffron has no stock row, so its deduction silently
	// failed at create time.
	ghostResp, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(ghost.ID, 1)))
	require.NoError(t, err)

	ids := make([]string, 0, 2)
	for _, o := range []dto.OrderResponse{steakResp.Data[0], ghostResp.Data[0]} {
		id := uuid.MustParse(o.ID)
		ids = append(ids, o.ID)
		f.orders.live[id].Reservation = f.reservation
		if o.Title == "Steak" {
			f.orders.live[id].Product = steak
		} else {
			f.orders.live[id].Product = ghost
		}
	}

	notice := "guest changed their mind"
	err = f.svc.Delete(context.Background(), guest(), dto.DeleteOrdersRequest{OrderIDs: ids, DeletionNotice: &notice})
	require.NoError(t, err)

	// Beef restored despite saffron having no stock row: restock is
	// best-effort per ingredient and never blocks the delete.
	assert.Equal(t, "10", stocks.volume("beef").String())
	assert.Len(t, f.orders.deleted, 2)
	assert.Equal(t, &notice, f.orders.notice)
	assert.Empty(t, f.orders.live)
}

func TestDeleteUnknownOrders(t *testing.T) {
	f := newOrderFixture(t, newStubStockRepo(), nil)
	err := f.svc.Delete(context.Background(), guest(), dto.DeleteOrdersRequest{OrderIDs: []string{uuid.NewString()}})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestListByReservationReturnsItsOrders(t *testing.T) {
	restaurantID := uuid.New()
	steak := newProduct(restaurantID, "Steak", model.ZoneGrill, 20)
	wine := newProduct(restaurantID, "House Red", model.ZoneBar, 8)
	f := newOrderFixture(t, newStubStockRepo(), nil, steak, wine)

	_, err := f.svc.Create(context.Background(), guest(), f.reservation.ID, createRequest(line(steak.ID, 1), line(wine.ID, 2)))
	require.NoError(t, err)

	resp, err := f.svc.ListByReservation(context.Background(), f.reservation.ID)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	titles := []string{resp.Data[0].Title, resp.Data[1].Title}
	assert.Contains(t, titles, "Steak")
	assert.Contains(t, titles, "House Red")
}

func TestListByReservationUnknownReservation(t *testing.T) {
	f := newOrderFixture(t, newStubStockRepo(), nil)
	_, err := f.svc.ListByReservation(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrReservationNotFound)
}
