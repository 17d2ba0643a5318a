package notifier

import (
	"fmt"
	"time"
)

// AnnualPrefix marks the second email sent inside the annual reminder window.
const AnnualPrefix = "[Annual Checkup] "

// Subject builds the notification subject line:
// "<optional prefix>Dual Momentum Rebalance - <ISO date>".
func Subject(prefix string, date time.Time) string {
	return fmt.Sprintf("%sDual Momentum Rebalance - %s", prefix, date.Format("2006-01-02"))
}
