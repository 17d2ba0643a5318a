package model

import "time"

// PriceBar represents a single monthly price sample.
type PriceBar struct {
	Time     time.Time
	Close    float64
	AdjClose float64
}

// ClosingValue returns the adjusted close when available, falling back to the
// raw close. ok is false when the bar carries no usable value.
func (b PriceBar) ClosingValue() (float64, bool) {
	if b.AdjClose > 0 {
		return b.AdjClose, true
	}
	if b.Close > 0 {
		return b.Close, true
	}
	return 0, false
}
