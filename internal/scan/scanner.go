package scan

import (
	"context"
	"sync"
	"time"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/earnings"
	"github.com/minglun/v32/backend/internal/indicator"
	"github.com/minglun/v32/backend/internal/scoring"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
	"github.com/minglun/v32/backend/pkg/redis"
)

// lookbackWindow covers one trading year, enough for the 200-day MA
const lookbackWindow = 365 * 24 * time.Hour

// Scanner runs the per-ticker scoring pipeline: fetch history, compute
// indicators, score, attach the earnings horizon. It holds no mutable
// state of its own; per-ticker calls are independent and safe to run
// in parallel.
type Scanner struct {
	market   contracts.MarketData
	engine   *indicator.Engine
	scorer   *scoring.Scorer
	cache    *redis.Cache
	cacheTTL time.Duration
	workers  int
	logger   *logger.Logger
}

// NewScanner creates a new scanner
func NewScanner(cfg *config.Config, market contracts.MarketData, cache *redis.Cache, log *logger.Logger) *Scanner {
	workers := cfg.Scan.Workers
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		market:   market,
		engine:   indicator.NewEngine(log),
		scorer:   scoring.NewScorer(),
		cache:    cache,
		cacheTTL: cfg.Scan.CacheTTL,
		workers:  workers,
		logger:   log,
	}
}

// ScanTicker runs the full pipeline for one symbol. ok is false when
// the data collaborator has nothing usable or the history is too short;
// the caller skips the ticker, it is never an error condition.
func (s *Scanner) ScanTicker(ctx context.Context, symbol string) (contracts.ScanResult, bool) {
	cacheKey := redis.ScanResultKey(symbol, time.Now().Format("2006-01-02"))

	var cached contracts.ScanResult
	if found, _ := s.cache.Get(ctx, cacheKey, &cached); found {
		return cached, true
	}

	series, err := s.market.FetchHistory(ctx, symbol, lookbackWindow)
	if err != nil {
		s.logger.WithField("symbol", symbol).Debug("No history, skipping ticker")
		return contracts.ScanResult{}, false
	}

	snapshot, err := s.engine.Compute(series)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"bars":   series.Len(),
		}).Debug("Insufficient history, skipping ticker")
		return contracts.ScanResult{}, false
	}

	// Earnings date is advisory; failure degrades to the sentinel
	earningsDate, err := s.market.FetchNextEarningsDate(ctx, symbol)
	if err != nil {
		earningsDate = nil
	}

	result := contracts.ScanResult{
		Symbol:       symbol,
		Snapshot:     snapshot,
		Score:        s.scorer.Score(snapshot),
		EarningsDays: earnings.DaysUntil(earningsDate, time.Now()),
		DistMA200Pct: distFromMA200(snapshot),
		ScannedAt:    time.Now(),
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Scan cache write failed")
	}

	return result, true
}

// ScanMany runs the pipeline for every symbol over a bounded worker
// pool. Results keep the input order; failed tickers are absent from
// the output rather than reported.
func (s *Scanner) ScanMany(ctx context.Context, symbols []string) []contracts.ScanResult {
	type slot struct {
		result contracts.ScanResult
		ok     bool
	}

	slots := make([]slot, len(symbols))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, ok := s.ScanTicker(ctx, symbol)
			slots[i] = slot{result: result, ok: ok}
		}(i, symbol)
	}

	wg.Wait()

	results := make([]contracts.ScanResult, 0, len(symbols))
	for _, sl := range slots {
		if sl.ok {
			results = append(results, sl.result)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"scanned":   len(results),
		"skipped":   len(symbols) - len(results),
	}).Info("Pool scan completed")

	return results
}

// distFromMA200 returns the close's percentage distance from MA200
func distFromMA200(snap contracts.IndicatorSnapshot) float64 {
	if snap.MA200 == 0 {
		return 0
	}
	return (snap.Close - snap.MA200) / snap.MA200 * 100
}
