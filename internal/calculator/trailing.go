package calculator

import (
	"errors"

	"github.com/ha404/dual-momentum/internal/model"
)

// ErrInsufficientData is returned when fewer than two usable price samples
// remain after filtering. It guards against brand-new or illiquid instruments
// producing a spurious near-zero signal.
var ErrInsufficientData = errors.New("insufficient price data")

// TotalReturn computes the total return over the given closes as a fractional
// proportion: lastClose/firstClose - 1 (0.08 means +8%).
func TotalReturn(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, ErrInsufficientData
	}
	first := closes[0]
	last := closes[len(closes)-1]
	if first == 0 {
		return 0, ErrInsufficientData
	}
	return last/first - 1, nil
}

// ExtractCloses reduces monthly bars to their usable closing values, preferring
// the adjusted close and dropping bars that carry neither value.
func ExtractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		if v, ok := b.ClosingValue(); ok {
			closes = append(closes, v)
		}
	}
	return closes
}
