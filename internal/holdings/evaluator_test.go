package holdings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/scan"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
	"github.com/minglun/v32/backend/pkg/redis"
)

// fakePositionStore keeps positions in memory
type fakePositionStore struct {
	positions []contracts.Position
}

func (f *fakePositionStore) List(ctx context.Context) ([]contracts.Position, error) {
	return f.positions, nil
}

func (f *fakePositionStore) Add(ctx context.Context, p contracts.Position) (int64, error) {
	f.positions = append(f.positions, p)
	return int64(len(f.positions)), nil
}

func (f *fakePositionStore) Delete(ctx context.Context, id int64) error {
	return nil
}

func (f *fakePositionStore) ReplaceAll(ctx context.Context, positions []contracts.Position) error {
	f.positions = positions
	return nil
}

// fakeMarketData serves one rising history per known symbol
type fakeMarketData struct {
	symbols map[string]bool
}

func (f *fakeMarketData) FetchHistory(ctx context.Context, symbol string, lookback time.Duration) (*contracts.PriceSeries, error) {
	if !f.symbols[symbol] {
		return nil, contracts.ErrUnavailable
	}

	series := &contracts.PriceSeries{Symbol: symbol}
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 250; i++ {
		series.Bars = append(series.Bars, contracts.Bar{
			Date:   day.AddDate(0, 0, i),
			Close:  100 + float64(i)*0.5,
			Volume: 1_000_000,
		})
	}
	return series, nil
}

func (f *fakeMarketData) FetchNextEarningsDate(ctx context.Context, symbol string) (*time.Time, error) {
	return nil, nil
}

func newTestEvaluator(t *testing.T, store contracts.PositionStore, market contracts.MarketData) *Evaluator {
	t.Helper()

	cfg := &config.Config{
		LogLevel:  "error",
		LogFormat: "json",
		Env:       "development",
		Redis:     config.RedisConfig{Enabled: false},
		Scan: config.ScanConfig{
			CacheTTL: 10 * time.Minute,
			Workers:  2,
		},
	}

	client, err := redis.New(cfg)
	require.NoError(t, err)

	log := logger.New(cfg)
	scanner := scan.NewScanner(cfg, market, redis.NewCache(client, "test"), log)
	return NewEvaluator(store, scanner, log)
}

func TestReport(t *testing.T) {
	store := &fakePositionStore{positions: []contracts.Position{
		{ID: 1, Code: "AAPL", Type: contracts.PositionDefensive, Cost: 150, Shares: 10},
		{ID: 2, Code: "NVDA", Type: contracts.PositionAggressive, Cost: 300, Shares: 5},
	}}
	market := &fakeMarketData{symbols: map[string]bool{"AAPL": true, "NVDA": true}}

	evaluator := newTestEvaluator(t, store, market)

	reports, totalProfit, err := evaluator.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Last close of the canned series is 100 + 249*0.5 = 224.5
	assert.Equal(t, "AAPL", reports[0].Code)
	assert.InDelta(t, 224.5, reports[0].Price, 1e-9)
	assert.InDelta(t, (224.5-150)*10, reports[0].Profit, 1e-9)
	assert.InDelta(t, (224.5-150)/150*100, reports[0].ProfitPct, 1e-9)

	assert.Equal(t, "NVDA", reports[1].Code)
	assert.InDelta(t, (224.5-300)*5, reports[1].Profit, 1e-9)

	wantTotal := (224.5-150)*10 + (224.5-300)*5
	assert.InDelta(t, wantTotal, totalProfit, 1e-9)
}

func TestReportOmitsUnscannableHoldings(t *testing.T) {
	store := &fakePositionStore{positions: []contracts.Position{
		{ID: 1, Code: "AAPL", Type: contracts.PositionDefensive, Cost: 150, Shares: 10},
		{ID: 2, Code: "GONE", Type: contracts.PositionAggressive, Cost: 50, Shares: 100},
	}}
	market := &fakeMarketData{symbols: map[string]bool{"AAPL": true}}

	evaluator := newTestEvaluator(t, store, market)

	reports, totalProfit, err := evaluator.Report(context.Background())
	require.NoError(t, err)

	// GONE is absent entirely, not reported as a zero row, and it
	// contributes nothing to the total.
	require.Len(t, reports, 1)
	assert.Equal(t, "AAPL", reports[0].Code)
	assert.InDelta(t, (224.5-150)*10, totalProfit, 1e-9)
}

func TestReportNoPositions(t *testing.T) {
	evaluator := newTestEvaluator(t, &fakePositionStore{}, &fakeMarketData{})

	reports, totalProfit, err := evaluator.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, 0.0, totalProfit)
}

func TestBuildReportAdvisory(t *testing.T) {
	position := contracts.Position{Code: "AAPL", Type: contracts.PositionDefensive, Cost: 100, Shares: 10}

	tests := []struct {
		name         string
		score        int
		earningsDays int
		want         string
	}{
		{"healthy holding", 85, contracts.EarningsUnknown, contracts.AdviceHold},
		{"earnings in five days", 85, 5, contracts.AdviceEarningsRisk},
		{"earnings today", 85, 0, contracts.AdviceEarningsRisk},
		{"earnings in six days is fine", 85, 6, contracts.AdviceHold},
		{"weak score", 55, contracts.EarningsUnknown, contracts.AdviceWeakening},
		{"earnings risk outranks weak score", 55, 3, contracts.AdviceEarningsRisk},
		{"boundary score holds", 60, contracts.EarningsUnknown, contracts.AdviceHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := contracts.ScanResult{
				Symbol:       "AAPL",
				Score:        tt.score,
				EarningsDays: tt.earningsDays,
				Snapshot:     contracts.IndicatorSnapshot{Close: 120},
			}

			report := buildReport(position, result)
			assert.Equal(t, tt.want, report.Advice)
		})
	}
}

func TestDistinctCodes(t *testing.T) {
	positions := []contracts.Position{
		{Code: "AAPL"},
		{Code: "NVDA"},
		{Code: "AAPL"},
		{Code: "COST"},
	}

	assert.Equal(t, []string{"AAPL", "NVDA", "COST"}, distinctCodes(positions))
}
