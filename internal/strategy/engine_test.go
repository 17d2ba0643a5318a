package strategy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha404/dual-momentum/internal/collector"
	"github.com/ha404/dual-momentum/internal/model"
)

var testTickers = Tickers{US: "VTI", Intl: "VXUS", RiskFree: "BIL", Bond: "BND"}

// barsForReturn builds a two-bar monthly series producing the given total return.
func barsForReturn(ret float64) []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.PriceBar{
		{Time: start, AdjClose: 100},
		{Time: start.AddDate(0, 12, 0), AdjClose: 100 * (1 + ret)},
	}
}

func newTestEngine(usRet, intlRet, rfRet float64) *Engine {
	mock := &collector.MockFetcher{Bars: map[string][]model.PriceBar{
		"VTI":  barsForReturn(usRet),
		"VXUS": barsForReturn(intlRet),
		"BIL":  barsForReturn(rfRet),
	}}
	col := collector.NewCollector(mock, 12, false, zerolog.Nop())
	return NewEngine(col, testTickers, zerolog.Nop())
}

func TestEvaluate_USWinsFilterPassed(t *testing.T) {
	e := newTestEngine(0.10, 0.04, 0.03)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.AssetUS, res.Winner)
	assert.Equal(t, model.AssetUS, res.NominalLeader)
	assert.True(t, res.AbsoluteFilterPassed)
	assert.Equal(t, "VTI", res.AllocateTo)
	assert.InDelta(t, 0.10, res.USReturn, 1e-9)
	assert.Contains(t, res.Report, "PASSED")
	assert.Contains(t, res.Report, "allocate 100% to VTI")
}

func TestEvaluate_IntlWinsFilterPassed(t *testing.T) {
	e := newTestEngine(0.04, 0.10, 0.03)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.AssetIntl, res.Winner)
	assert.True(t, res.AbsoluteFilterPassed)
	assert.Equal(t, "VXUS", res.AllocateTo)
}

func TestEvaluate_FilterFailedMovesToBonds(t *testing.T) {
	e := newTestEngine(0.02, 0.01, 0.05)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	// The nominal leader is reported, but the winner is none and the
	// allocation goes defensive.
	assert.Equal(t, model.AssetNone, res.Winner)
	assert.Equal(t, model.AssetUS, res.NominalLeader)
	assert.False(t, res.AbsoluteFilterPassed)
	assert.Equal(t, "BND", res.AllocateTo)
	assert.Contains(t, res.Report, "FAILED")
	assert.Contains(t, res.Report, "US equity nominally leads")
	assert.Contains(t, res.Report, "allocate 100% to BND")
}

func TestEvaluate_FilterFailedIntlLeader(t *testing.T) {
	e := newTestEngine(0.01, 0.02, 0.05)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.AssetNone, res.Winner)
	assert.Equal(t, model.AssetIntl, res.NominalLeader)
	assert.Contains(t, res.Report, "International equity nominally leads")
}

func TestEvaluate_TieResolvesToUS(t *testing.T) {
	e := newTestEngine(0.05, 0.05, 0.01)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.AssetUS, res.Winner)
	assert.Equal(t, "VTI", res.AllocateTo)
}

func TestEvaluate_EqualToRiskFreeFails(t *testing.T) {
	// The absolute filter requires strictly greater than the risk-free return.
	e := newTestEngine(0.05, 0.04, 0.05)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.False(t, res.AbsoluteFilterPassed)
	assert.Equal(t, model.AssetNone, res.Winner)
	assert.Equal(t, "BND", res.AllocateTo)
}

func TestEvaluate_FetchFailureAbortsWholeEvaluation(t *testing.T) {
	provErr := errors.New("provider down")
	mock := &collector.MockFetcher{Err: provErr}
	col := collector.NewCollector(mock, 12, false, zerolog.Nop())
	e := NewEngine(col, testTickers, zerolog.Nop())

	res, err := e.Evaluate(context.Background())
	require.ErrorIs(t, err, provErr)
	assert.Nil(t, res)
}

func TestEvaluate_ReportRendersPercentages(t *testing.T) {
	e := newTestEngine(0.0823, 0.041, 0.03)

	res, err := e.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, res.Report, "8.23%")
	assert.Contains(t, res.Report, "4.10%")
	assert.Contains(t, res.Report, "3.00%")
	assert.Contains(t, res.Report, "12-month trailing returns")
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "8.23%", FormatPercent(0.0823))
	assert.Equal(t, "-3.50%", FormatPercent(-0.035))
	assert.Equal(t, "0.00%", FormatPercent(0))
}
