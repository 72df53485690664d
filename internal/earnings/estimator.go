package earnings

import (
	"time"

	"github.com/minglun/v32/backend/internal/contracts"
)

// DaysUntil converts the next scheduled earnings date into a day count
// relative to today. A nil date, or a date that is not in the future,
// resolves to the contracts.EarningsUnknown sentinel: upstream
// calendars routinely return stale metadata, and the sentinel lets
// downstream rules treat unknown as "not imminent".
func DaysUntil(date *time.Time, today time.Time) int {
	if date == nil {
		return contracts.EarningsUnknown
	}

	// Compare calendar days, not instants
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	days := int(d.Sub(t).Hours() / 24)
	if days < 0 {
		return contracts.EarningsUnknown
	}
	return days
}
