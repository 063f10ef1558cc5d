package service

import (
	"context"
	"errors"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService serves the warehouse read endpoints and manual corrections.
// Corrections go through the ledger like any other mutation, so they get the
// same row locking and non-negativity check.
type StockService interface {
	List(ctx context.Context, restaurantID uuid.UUID, filter dto.StockFilter) (*dto.StockListResponse, error)
	Adjust(ctx context.Context, actor Actor, stockID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockResponse, error)
}

type stockService struct {
	stocks repository.StockRepository
	ledger *StockLedger
}

func NewStockService(stocks repository.StockRepository, ledger *StockLedger) StockService {
	return &stockService{stocks: stocks, ledger: ledger}
}

func (s *stockService) List(ctx context.Context, restaurantID uuid.UUID, filter dto.StockFilter) (*dto.StockListResponse, error) {
	rows, total, err := s.stocks.List(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockListResponse{
		Data:  make([]dto.StockResponse, 0, len(rows)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range rows {
		resp.Data = append(resp.Data, stockToResponse(&rows[i]))
	}
	return resp, nil
}

func (s *stockService) Adjust(ctx context.Context, actor Actor, stockID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockResponse, error) {
	row, err := s.stocks.FindByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	if row.RestaurantID != actor.RestaurantID {
		return nil, ErrStockNotFound
	}

	delta := StockDelta{Ingredient: row.Title, Quantity: req.Delta}
	if err := s.ledger.TransactionalBatch(ctx, row.RestaurantID, []StockDelta{delta}); err != nil {
		return nil, err
	}

	log.Info().
		Str("stock_id", stockID.String()).
		Str("user_id", actor.ID.String()).
		Str("delta", req.Delta.String()).
		Str("reason", req.Reason).
		Msg("stock: manual adjustment applied")

	updated, err := s.stocks.FindByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	resp := stockToResponse(updated)
	return &resp, nil
}

func stockToResponse(s *model.Stock) dto.StockResponse {
	resp := dto.StockResponse{
		ID:           s.ID.String(),
		Title:        s.Title,
		Category:     s.Category,
		Volume:       s.Volume,
		Unit:         s.Unit,
		PieceVolume:  s.PieceVolume,
		PieceUnit:    s.PieceUnit,
		ReorderLimit: s.ReorderLimit,
		StockStatus:  s.StockStatus,
	}
	if s.ExpirationDate != nil {
		d := s.ExpirationDate.Format(time.RFC3339)
		resp.ExpirationDate = &d
	}
	return resp
}
