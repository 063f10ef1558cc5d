package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/repository"
	"github.com/Shunea/be-easyreserv-sub000/internal/unit"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockDelta is one signed adjustment against an ingredient's stock row,
// expressed in grams-equivalent base units. Negative consumes, positive
// restores.
type StockDelta struct {
	Ingredient string
	Quantity   decimal.Decimal
}

// StockLedger is the only writer of stock volumes. Every mutation goes
// through one of its two batch strategies:
//
//   - TransactionalBatch: all-or-nothing, used when orders consume stock.
//   - BestEffortBatch: per-row independent transactions, used when deleted
//     orders restore stock.
type StockLedger struct {
	stocks    repository.StockRepository
	txTimeout time.Duration
}

func NewStockLedger(stocks repository.StockRepository, txTimeout time.Duration) *StockLedger {
	return &StockLedger{stocks: stocks, txTimeout: txTimeout}
}

// applyDeltaTx loads the row under a FOR UPDATE lock, applies the delta in
// base units and stages the new volume on the returned row. It does NOT save:
// TransactionalBatch validates every row before persisting any of them.
func (l *StockLedger) applyDeltaTx(tx *gorm.DB, restaurantID uuid.UUID, d StockDelta) (*model.Stock, error) {
	row, err := l.stocks.FindForUpdateTx(tx, restaurantID, d.Ingredient)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStockNotFound, d.Ingredient)
		}
		return nil, err
	}

	base, err := unit.ToBase(row.Volume, row.Unit, row.PieceVolume, row.PieceUnit)
	if err != nil {
		return nil, fmt.Errorf("stock %s: %w", d.Ingredient, err)
	}

	next := base.Add(d.Quantity)
	if next.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, d.Ingredient)
	}

	volume, err := unit.FromBase(next, row.Unit, row.PieceVolume, row.PieceUnit)
	if err != nil {
		return nil, fmt.Errorf("stock %s: %w", d.Ingredient, err)
	}
	row.Volume = volume
	return row, nil
}

// TransactionalBatch applies every delta inside a single transaction bounded
// by the configured timeout. Validation is two-phase: all rows are locked and
// checked first, then saved, so the first failing ingredient aborts the whole
// batch and no volume changes. Callers must pre-merge deltas so each
// ingredient appears at most once.
func (l *StockLedger) TransactionalBatch(ctx context.Context, restaurantID uuid.UUID, deltas []StockDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, l.txTimeout)
	defer cancel()

	return runTx(ctx, l.stocks.DB(), func(tx *gorm.DB) error {
		staged := make([]*model.Stock, 0, len(deltas))
		for _, d := range deltas {
			row, err := l.applyDeltaTx(tx, restaurantID, d)
			if err != nil {
				return err
			}
			staged = append(staged, row)
		}
		for _, row := range staged {
			if err := l.stocks.SaveTx(tx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// BestEffortBatch applies each delta in its own small transaction. A failing
// ingredient is logged and skipped; the rest still go through. Returns the
// per-ingredient failures for callers that want to surface them.
func (l *StockLedger) BestEffortBatch(ctx context.Context, restaurantID uuid.UUID, deltas []StockDelta) []error {
	var errs []error
	for _, d := range deltas {
		err := l.applyOne(ctx, restaurantID, d)
		if err != nil {
			log.Warn().
				Str("restaurant_id", restaurantID.String()).
				Str("ingredient", d.Ingredient).
				Str("delta", d.Quantity.String()).
				Err(err).
				Msg("stock ledger: best-effort adjustment failed")
			errs = append(errs, fmt.Errorf("%s: %w", d.Ingredient, err))
		}
	}
	return errs
}

func (l *StockLedger) applyOne(ctx context.Context, restaurantID uuid.UUID, d StockDelta) error {
	ctx, cancel := context.WithTimeout(ctx, l.txTimeout)
	defer cancel()

	return runTx(ctx, l.stocks.DB(), func(tx *gorm.DB) error {
		row, err := l.applyDeltaTx(tx, restaurantID, d)
		if err != nil {
			return err
		}
		return l.stocks.SaveTx(tx, row)
	})
}

// MergeDeltas collapses repeated ingredients into a single summed delta and
// sorts the result by ingredient name. Every transaction then locks rows in
// the same global order no matter how the request listed its products, so two
// concurrent batches touching the same ingredients cannot deadlock.
func MergeDeltas(deltas []StockDelta) []StockDelta {
	idx := make(map[string]int, len(deltas))
	merged := make([]StockDelta, 0, len(deltas))
	for _, d := range deltas {
		if i, ok := idx[d.Ingredient]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(d.Quantity)
			continue
		}
		idx[d.Ingredient] = len(merged)
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Ingredient < merged[j].Ingredient })
	return merged
}
