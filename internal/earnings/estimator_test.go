package earnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minglun/v32/backend/internal/contracts"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date *time.Time
		want int
	}{
		{"nil date is unknown", nil, contracts.EarningsUnknown},
		{"one week out", date(2025, 3, 17), 7},
		{"tomorrow", date(2025, 3, 11), 1},
		{"same day", date(2025, 3, 10), 0},
		{"stale date a month back", date(2025, 2, 8), contracts.EarningsUnknown},
		{"yesterday", date(2025, 3, 9), contracts.EarningsUnknown},
		{"far future", date(2025, 6, 18), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.date, today))
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	// Calendar days only: a late-evening "today" and an early-morning
	// earnings date must still land on the day difference.
	today := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
	earningsDate := time.Date(2025, 3, 12, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysUntil(&earningsDate, today))
}
