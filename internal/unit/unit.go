// Package unit normalizes heterogeneous stock quantities to a single
// grams-equivalent base so the ledger can do arithmetic across kg/g/l/ml/pcs
// rows. Mass and volume are treated as interchangeable on a 1000:1 scale —
// a bookkeeping convention, not a physical conversion.
package unit

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Supported stock units. The set is closed: anything else is a hard error,
// never a silent passthrough.
const (
	Kilogram   = "kg"
	Gram       = "g"
	Liter      = "l"
	Milliliter = "ml"
	Piece      = "pcs"
)

var (
	ErrUnknownUnit  = errors.New("unknown stock unit")
	ErrInvalidPiece = errors.New("piece volume must be positive")
)

var thousand = decimal.NewFromInt(1000)

// ToBase converts a quantity in the given unit to grams-equivalent.
// pieceVolume/pieceUnit are only consulted for pcs, where one piece itself
// has a mass or volume (a 0.5 l bottle, a 2 kg bag).
func ToBase(quantity decimal.Decimal, u string, pieceVolume decimal.Decimal, pieceUnit string) (decimal.Decimal, error) {
	factor, err := baseFactor(u, pieceVolume, pieceUnit)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.Mul(factor), nil
}

// FromBase converts a grams-equivalent quantity back to the target unit.
// Piece counts are rounded to 2 decimal places.
func FromBase(base decimal.Decimal, u string, pieceVolume decimal.Decimal, pieceUnit string) (decimal.Decimal, error) {
	factor, err := baseFactor(u, pieceVolume, pieceUnit)
	if err != nil {
		return decimal.Zero, err
	}
	q := base.Div(factor)
	if u == Piece {
		q = q.Round(2)
	}
	return q, nil
}

func baseFactor(u string, pieceVolume decimal.Decimal, pieceUnit string) (decimal.Decimal, error) {
	switch u {
	case Kilogram, Liter:
		return thousand, nil
	case Gram, Milliliter:
		return decimal.NewFromInt(1), nil
	case Piece:
		if !pieceVolume.IsPositive() {
			return decimal.Zero, ErrInvalidPiece
		}
		switch pieceUnit {
		case Kilogram, Liter:
			return pieceVolume.Mul(thousand), nil
		case Gram, Milliliter:
			return pieceVolume, nil
		default:
			return decimal.Zero, ErrUnknownUnit
		}
	default:
		return decimal.Zero, ErrUnknownUnit
	}
}
