package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
	"github.com/minglun/v32/backend/pkg/redis"
)

type fakeMarketData struct {
	series *contracts.PriceSeries
}

func (f *fakeMarketData) FetchHistory(ctx context.Context, symbol string, lookback time.Duration) (*contracts.PriceSeries, error) {
	if f.series == nil {
		return nil, contracts.ErrUnavailable
	}
	return f.series, nil
}

func (f *fakeMarketData) FetchNextEarningsDate(ctx context.Context, symbol string) (*time.Time, error) {
	return nil, nil
}

func newTestService(t *testing.T, market contracts.MarketData) *Service {
	t.Helper()

	cfg := &config.Config{
		LogLevel:  "error",
		LogFormat: "json",
		Env:       "development",
		Redis:     config.RedisConfig{Enabled: false},
		Scan: config.ScanConfig{
			BenchmarkSymbol: "^GSPC",
			CacheTTL:        10 * time.Minute,
		},
	}

	client, err := redis.New(cfg)
	require.NoError(t, err)

	return NewService(cfg, market, redis.NewCache(client, "test"), logger.New(cfg))
}

func trendSeries(closes func(i int) float64) *contracts.PriceSeries {
	series := &contracts.PriceSeries{Symbol: "^GSPC"}
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 250; i++ {
		series.Bars = append(series.Bars, contracts.Bar{
			Date:   day.AddDate(0, 0, i),
			Close:  closes(i),
			Volume: 1_000_000,
		})
	}
	return series
}

func TestStatusBullish(t *testing.T) {
	market := &fakeMarketData{series: trendSeries(func(i int) float64 {
		return 4000 + float64(i)*5
	})}
	service := newTestService(t, market)

	status := service.Status(context.Background())

	assert.Equal(t, "^GSPC", status.Symbol)
	assert.Equal(t, contracts.RegimeBullish, status.Regime)
	assert.Greater(t, status.Price, status.MA200)
	assert.False(t, status.AsOf.IsZero())
}

func TestStatusBearish(t *testing.T) {
	market := &fakeMarketData{series: trendSeries(func(i int) float64 {
		return 5000 - float64(i)*5
	})}
	service := newTestService(t, market)

	status := service.Status(context.Background())

	assert.Equal(t, contracts.RegimeBearish, status.Regime)
	assert.Less(t, status.Price, status.MA200)
}

func TestStatusUnavailable(t *testing.T) {
	service := newTestService(t, &fakeMarketData{})

	status := service.Status(context.Background())

	assert.Equal(t, contracts.RegimeUnknown, status.Regime)
	assert.Equal(t, "^GSPC", status.Symbol)
	assert.Zero(t, status.Price)
}

func TestStatusShortHistory(t *testing.T) {
	short := &contracts.PriceSeries{Symbol: "^GSPC"}
	for i := 0; i < 50; i++ {
		short.Bars = append(short.Bars, contracts.Bar{Close: 4000})
	}
	service := newTestService(t, &fakeMarketData{series: short})

	status := service.Status(context.Background())
	assert.Equal(t, contracts.RegimeUnknown, status.Regime)
}
