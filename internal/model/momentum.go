package model

import "time"

// Asset identifies which risky asset a momentum comparison selected.
type Asset string

const (
	AssetUS   Asset = "US"
	AssetIntl Asset = "INTL"
	AssetNone Asset = "NONE"
)

// MomentumResult is the final output of the momentum decision engine.
// It is built once per evaluation and never mutated afterwards.
type MomentumResult struct {
	USReturn       float64
	IntlReturn     float64
	RiskFreeReturn float64

	// NominalLeader is whichever of US/INTL had the greater trailing return,
	// ties resolving to US. Winner equals the leader when the absolute
	// momentum filter passed, AssetNone otherwise.
	NominalLeader Asset
	Winner        Asset

	AbsoluteFilterPassed bool

	// AllocateTo is the ticker the recommendation allocates 100% to: the
	// winning equity when the filter passed, the defensive bond otherwise.
	AllocateTo string

	Report      string
	EvaluatedAt time.Time
}
