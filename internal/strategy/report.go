package strategy

import (
	"fmt"
	"strings"

	"github.com/ha404/dual-momentum/internal/model"
)

// FormatPercent renders a fractional return with two-decimal precision,
// e.g. 0.0823 becomes "8.23%".
func FormatPercent(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

func assetLabel(a model.Asset) string {
	switch a {
	case model.AssetUS:
		return "US equity"
	case model.AssetIntl:
		return "International equity"
	default:
		return "None"
	}
}

// renderReport builds the plain-text recommendation report.
func (e *Engine) renderReport(res *model.MomentumResult, leaderReturn float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Dual Momentum Report | %s\n\n", res.EvaluatedAt.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("%d-month trailing returns:\n", e.Collector.LookbackMonths))
	b.WriteString(fmt.Sprintf("  US equity (%s):            %s\n", e.Tickers.US, FormatPercent(res.USReturn)))
	b.WriteString(fmt.Sprintf("  International equity (%s): %s\n", e.Tickers.Intl, FormatPercent(res.IntlReturn)))
	b.WriteString(fmt.Sprintf("  Risk-free proxy (%s):      %s\n\n", e.Tickers.RiskFree, FormatPercent(res.RiskFreeReturn)))

	if res.AbsoluteFilterPassed {
		margin := leaderReturn - res.RiskFreeReturn
		b.WriteString("Absolute momentum filter: PASSED\n")
		b.WriteString(fmt.Sprintf("%s leads and beats the risk-free return by %s.\n\n",
			assetLabel(res.Winner), FormatPercent(margin)))
		b.WriteString(fmt.Sprintf("Recommendation: allocate 100%% to %s.\n", res.AllocateTo))
	} else {
		shortfall := res.RiskFreeReturn - leaderReturn
		b.WriteString("Absolute momentum filter: FAILED\n")
		b.WriteString(fmt.Sprintf("%s nominally leads but falls short of the risk-free return by %s.\n\n",
			assetLabel(res.NominalLeader), FormatPercent(shortfall)))
		b.WriteString(fmt.Sprintf("Recommendation: move to the defensive position, allocate 100%% to %s.\n", res.AllocateTo))
	}

	return b.String()
}
