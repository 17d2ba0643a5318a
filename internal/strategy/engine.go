package strategy

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ha404/dual-momentum/internal/collector"
	"github.com/ha404/dual-momentum/internal/model"
)

// Tickers names the four instruments the strategy trades between.
type Tickers struct {
	US       string
	Intl     string
	RiskFree string
	Bond     string
}

// Engine applies the dual-momentum rules: relative momentum picks the stronger
// of the two risky assets, the absolute filter compares it against the
// risk-free return, and a failed filter routes the allocation to bonds.
type Engine struct {
	Collector *collector.Collector
	Tickers   Tickers
	Logger    zerolog.Logger
}

// NewEngine creates a new Engine.
func NewEngine(col *collector.Collector, tickers Tickers, log zerolog.Logger) *Engine {
	return &Engine{Collector: col, Tickers: tickers, Logger: log}
}

// Evaluate computes the three trailing returns concurrently and produces the
// allocation recommendation. Any underlying failure aborts the whole
// evaluation; there is no partial result and no retry.
func (e *Engine) Evaluate(ctx context.Context) (*model.MomentumResult, error) {
	var (
		us, intl, rf          float64
		usErr, intlErr, rfErr error
		wg                    sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		us, usErr = e.Collector.TrailingReturn(ctx, e.Tickers.US)
	}()
	go func() {
		defer wg.Done()
		intl, intlErr = e.Collector.TrailingReturn(ctx, e.Tickers.Intl)
	}()
	go func() {
		defer wg.Done()
		rf, rfErr = e.Collector.TrailingReturn(ctx, e.Tickers.RiskFree)
	}()
	wg.Wait()

	for _, err := range []error{usErr, intlErr, rfErr} {
		if err != nil {
			return nil, err
		}
	}

	// Relative momentum. A tie resolves to US.
	leader, leaderReturn, leaderTicker := model.AssetUS, us, e.Tickers.US
	if intl > us {
		leader, leaderReturn, leaderTicker = model.AssetIntl, intl, e.Tickers.Intl
	}

	res := &model.MomentumResult{
		USReturn:             us,
		IntlReturn:           intl,
		RiskFreeReturn:       rf,
		NominalLeader:        leader,
		AbsoluteFilterPassed: leaderReturn > rf,
		EvaluatedAt:          time.Now(),
	}

	if res.AbsoluteFilterPassed {
		res.Winner = leader
		res.AllocateTo = leaderTicker
	} else {
		res.Winner = model.AssetNone
		res.AllocateTo = e.Tickers.Bond
	}

	res.Report = e.renderReport(res, leaderReturn)

	e.Logger.Info().
		Float64("us_return", us).
		Float64("intl_return", intl).
		Float64("risk_free_return", rf).
		Str("winner", string(res.Winner)).
		Bool("filter_passed", res.AbsoluteFilterPassed).
		Str("allocate_to", res.AllocateTo).
		Msg("momentum evaluation complete")

	return res, nil
}
