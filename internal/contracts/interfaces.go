package contracts

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable signals that the market-data collaborator could not
// produce a series or date. Callers treat it as a typed absence, not
// a fault: the ticker is simply skipped.
var ErrUnavailable = errors.New("market data unavailable")

// MarketData retrieves daily history and earnings metadata for a symbol
type MarketData interface {
	// FetchHistory returns daily bars covering at least the lookback
	// window, oldest first. Returns ErrUnavailable when the provider
	// has no usable data.
	FetchHistory(ctx context.Context, symbol string, lookback time.Duration) (*PriceSeries, error)

	// FetchNextEarningsDate returns the next scheduled earnings
	// release, or nil when no date is available.
	FetchNextEarningsDate(ctx context.Context, symbol string) (*time.Time, error)
}

// PositionStore persists holdings as a flat record set
type PositionStore interface {
	List(ctx context.Context) ([]Position, error)
	Add(ctx context.Context, p Position) (int64, error)
	Delete(ctx context.Context, id int64) error

	// ReplaceAll overwrites the stored set with the given records
	ReplaceAll(ctx context.Context, positions []Position) error
}
