package service

import (
	"context"
	"sort"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ─── stock repository stub ───────────────────────────────────────────────────

type stubStockRepo struct {
	rows      map[string]*model.Stock
	saveCalls int
}

func newStubStockRepo(rows ...*model.Stock) *stubStockRepo {
	m := make(map[string]*model.Stock, len(rows))
	for _, r := range rows {
		m[r.Title] = r
	}
	return &stubStockRepo{rows: m}
}

// FindForUpdateTx returns a copy so staged-but-unsaved mutations never leak
// into the backing map, mirroring transaction isolation.
func (r *stubStockRepo) FindForUpdateTx(_ *gorm.DB, _ uuid.UUID, title string) (*model.Stock, error) {
	row, ok := r.rows[title]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *stubStockRepo) SaveTx(_ *gorm.DB, s *model.Stock) error {
	r.saveCalls++
	cp := *s
	r.rows[s.Title] = &cp
	return nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Stock, error) {
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) List(_ context.Context, restaurantID uuid.UUID, _ dto.StockFilter) ([]model.Stock, int64, error) {
	var out []model.Stock
	for _, row := range r.rows {
		if row.RestaurantID == restaurantID {
			out = append(out, *row)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

func (r *stubStockRepo) volume(title string) decimal.Decimal { return r.rows[title].Volume }

// ─── order repository stub ───────────────────────────────────────────────────

type stubOrderRepo struct {
	live          map[uuid.UUID]*model.Order
	reservationOf map[uuid.UUID]uuid.UUID
	deleted       []uuid.UUID
	notice        *string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		live:          make(map[uuid.UUID]*model.Order),
		reservationOf: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *stubOrderRepo) CreateBatch(_ context.Context, orders []*model.Order) error {
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		o.CreatedAt = time.Now()
		r.live[o.ID] = o
		r.reservationOf[o.ID] = o.ReservationID
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.live[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, id := range ids {
		if o, ok := r.live[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindByReservation(_ context.Context, reservationID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.live {
		if o.ReservationID == reservationID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) Save(_ context.Context, o *model.Order) error {
	r.live[o.ID] = o
	return nil
}

func (r *stubOrderRepo) SoftDelete(_ context.Context, ids []uuid.UUID, notice *string) error {
	r.deleted = append(r.deleted, ids...)
	r.notice = notice
	for _, id := range ids {
		delete(r.live, id)
	}
	return nil
}

func (r *stubOrderRepo) ReservationIDs(_ context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, id := range orderIDs {
		if resID, ok := r.reservationOf[id]; ok && !seen[resID] {
			seen[resID] = true
			out = append(out, resID)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

// ─── remaining repository stubs ──────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	m := make(map[uuid.UUID]*model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func (r *stubProductRepo) FindByIDsWithBOM(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type stubReservationRepo struct {
	reservations map[uuid.UUID]*model.Reservation
}

func newStubReservationRepo(reservations ...*model.Reservation) *stubReservationRepo {
	m := make(map[uuid.UUID]*model.Reservation, len(reservations))
	for _, res := range reservations {
		m[res.ID] = res
	}
	return &stubReservationRepo{reservations: m}
}

func (r *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (r *stubReservationRepo) FindForBoard(_ context.Context, ids []uuid.UUID) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, id := range ids {
		if res, ok := r.reservations[id]; ok {
			out = append(out, *res)
		}
	}
	return out, nil
}

type stubPlanRepo struct {
	plan *model.PlanHistory
}

func (r *stubPlanRepo) CurrentPlan(context.Context, uuid.UUID, uuid.UUID) (*model.PlanHistory, error) {
	if r.plan == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.plan, nil
}

// ─── collaborator stubs ──────────────────────────────────────────────────────

type stubNotifier struct {
	sent []ReservationOrderNotification
	err  error
}

func (n *stubNotifier) NotifyReservationOrders(_ context.Context, notification ReservationOrderNotification) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)
	return nil
}

type stubPublisher struct {
	published [][]uuid.UUID
}

func (p *stubPublisher) PublishOrders(_ context.Context, orderIDs []uuid.UUID) {
	p.published = append(p.published, orderIDs)
}

// ─── builders ────────────────────────────────────────────────────────────────

type bomLine struct {
	name string
	qty  float64 // grams-equivalent per ordered unit
}

func newProduct(restaurantID uuid.UUID, title, zone string, price float64, bom ...bomLine) *model.Product {
	p := &model.Product{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Title:        title,
		PrepZone:     zone,
		Price:        decimal.NewFromFloat(price),
	}
	for _, line := range bom {
		p.Ingredients = append(p.Ingredients, model.ProductIngredient{
			ProductID:    p.ID,
			IngredientID: uuid.New(),
			Quantity:     decimal.NewFromFloat(line.qty),
			Ingredient:   &model.Ingredient{ID: uuid.New(), Name: line.name},
		})
	}
	return p
}

func newStock(restaurantID uuid.UUID, title string, volume float64, u string) *model.Stock {
	return &model.Stock{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Title:        title,
		Volume:       decimal.NewFromFloat(volume),
		Unit:         u,
	}
}

func newPieceStock(restaurantID uuid.UUID, title string, pieces, pieceVolume float64, pieceUnit string) *model.Stock {
	s := newStock(restaurantID, title, pieces, "pcs")
	s.PieceVolume = decimal.NewFromFloat(pieceVolume)
	s.PieceUnit = pieceUnit
	return s
}

func newReservation(restaurantID uuid.UUID, tables ...string) *model.Reservation {
	waiterID := uuid.New()
	res := &model.Reservation{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		WaiterID:     waiterID,
		ClientName:   "Ion Popescu",
		Waiter:       &model.User{ID: waiterID, Name: "Ana", Role: model.RoleWaiter},
	}
	for _, name := range tables {
		res.Tables = append(res.Tables, model.Table{ID: uuid.New(), RestaurantID: restaurantID, Name: name})
	}
	return res
}
