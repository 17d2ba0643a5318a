package scheduler

import (
	"time"

	"github.com/ha404/dual-momentum/internal/config"
)

// InReminderWindow reports whether t falls inside the annual reminder window:
// the first WindowDays days of the configured month.
func InReminderWindow(t time.Time, w config.ReminderWindow) bool {
	return int(t.Month()) == w.Month && t.Day() <= w.WindowDays
}
