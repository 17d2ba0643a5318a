package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ha404/dual-momentum/internal/calculator"
	"github.com/ha404/dual-momentum/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Safe for the concurrent fetches the engine issues.
type MockFetcher struct {
	Bars map[string][]model.PriceBar
	Err  error

	mu sync.Mutex
	// lastStart/lastEnd record the most recent requested window.
	lastStart time.Time
	lastEnd   time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMonthlyHistory(_ context.Context, ticker string, start, end time.Time) ([]model.PriceBar, error) {
	m.mu.Lock()
	m.lastStart, m.lastEnd = start, end
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[ticker]; ok {
		return bars, nil
	}
	return nil, fmt.Errorf("mock: no data for %s", ticker)
}

// LastWindow returns the most recently requested fetch window.
func (m *MockFetcher) LastWindow() (start, end time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStart, m.lastEnd
}

// Collector reduces fetched monthly history to a single trailing total return.
type Collector struct {
	Fetcher          Fetcher
	LookbackMonths   int
	SkipCurrentMonth bool
	Logger           zerolog.Logger

	// Now is injectable for deterministic window tests; nil means time.Now.
	Now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookbackMonths int, skipCurrentMonth bool, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:          fetcher,
		LookbackMonths:   lookbackMonths,
		SkipCurrentMonth: skipCurrentMonth,
		Logger:           log,
	}
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// TrailingReturn fetches monthly history for ticker over a window of
// LookbackMonths+1 months ending today and reduces it to a single total
// return: lastClose/firstClose - 1. When SkipCurrentMonth is set the final
// (possibly partial) month is dropped before the reduction.
//
// A provider failure propagates wrapped; fewer than 2 usable closes yields
// calculator.ErrInsufficientData. Callers must not substitute a default
// return on either failure.
func (c *Collector) TrailingReturn(ctx context.Context, ticker string) (float64, error) {
	if ticker == "" {
		return 0, fmt.Errorf("ticker is required")
	}
	if c.LookbackMonths <= 0 {
		return 0, fmt.Errorf("lookback months must be positive, got %d", c.LookbackMonths)
	}

	end := c.now()
	start := end.AddDate(0, -(c.LookbackMonths + 1), 0)

	bars, err := c.Fetcher.FetchMonthlyHistory(ctx, ticker, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch monthly history for %s: %w", ticker, err)
	}

	closes := calculator.ExtractCloses(bars)
	if c.SkipCurrentMonth && len(closes) > 0 {
		closes = closes[:len(closes)-1]
	}

	ret, err := calculator.TotalReturn(closes)
	if err != nil {
		return 0, fmt.Errorf("trailing return for %s: %w", ticker, err)
	}

	c.Logger.Debug().
		Str("ticker", ticker).
		Int("samples", len(closes)).
		Float64("return", ret).
		Msg("computed trailing return")

	return ret, nil
}
