package dto

import "github.com/shopspring/decimal"

// StockFilter is bound from the query string of GET /v1/stock.
type StockFilter struct {
	Category string `form:"category"`
	Status   string `form:"status"` // OK | LOW | CRITICAL | EXPIRED
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type StockResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Category       string          `json:"category"`
	Volume         decimal.Decimal `json:"volume"`
	Unit           string          `json:"unit"`
	PieceVolume    decimal.Decimal `json:"pc_volume"`
	PieceUnit      string          `json:"pc_unit,omitempty"`
	ReorderLimit   decimal.Decimal `json:"reorder_limit"`
	ExpirationDate *string         `json:"expiration_date,omitempty"`
	StockStatus    string          `json:"stock_status"`
}

type StockListResponse struct {
	Data  []StockResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// AdjustStockRequest is a manual correction applied through the ledger.
// Delta is signed and expressed in grams-equivalent base units.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"required,min=5"`
}
