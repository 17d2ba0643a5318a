package collector

import (
	"context"
	"time"

	"github.com/ha404/dual-momentum/internal/model"
)

// Fetcher defines the interface for fetching monthly price history.
type Fetcher interface {
	// FetchMonthlyHistory returns monthly bars for ticker within [start, end],
	// in chronological order. Provider failures are returned unmodified.
	FetchMonthlyHistory(ctx context.Context, ticker string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
