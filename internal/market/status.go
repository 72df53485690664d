package market

import (
	"context"
	"time"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/indicator"
	"github.com/minglun/v32/backend/internal/regime"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
	"github.com/minglun/v32/backend/pkg/redis"
)

const lookbackWindow = 365 * 24 * time.Hour

// Service classifies the benchmark index into a market regime.
// The result gates the whole watchlist, so it is cached briefly.
type Service struct {
	market   contracts.MarketData
	engine   *indicator.Engine
	cache    *redis.Cache
	cacheTTL time.Duration
	symbol   string
	logger   *logger.Logger
}

// NewService creates a new market status service
func NewService(cfg *config.Config, marketData contracts.MarketData, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		market:   marketData,
		engine:   indicator.NewEngine(log),
		cache:    cache,
		cacheTTL: cfg.Scan.CacheTTL,
		symbol:   cfg.Scan.BenchmarkSymbol,
		logger:   log,
	}
}

// Status fetches benchmark history and classifies the regime. When the
// collaborator has no usable data the regime is Unknown; that is the
// only path to the Unknown label.
func (s *Service) Status(ctx context.Context) contracts.MarketStatus {
	var cached contracts.MarketStatus
	if found, _ := s.cache.Get(ctx, redis.RegimeKey(s.symbol), &cached); found {
		return cached
	}

	unknown := contracts.MarketStatus{
		Symbol: s.symbol,
		Regime: contracts.RegimeUnknown,
		AsOf:   time.Now(),
	}

	series, err := s.market.FetchHistory(ctx, s.symbol, lookbackWindow)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", s.symbol).Warn("Benchmark history unavailable")
		return unknown
	}

	snapshot, err := s.engine.Compute(series)
	if err != nil {
		s.logger.WithField("symbol", s.symbol).Warn("Benchmark history too short")
		return unknown
	}

	status := contracts.MarketStatus{
		Symbol: s.symbol,
		Regime: regime.Classify(snapshot),
		Price:  snapshot.Close,
		MA200:  snapshot.MA200,
		AsOf:   time.Now(),
	}

	if err := s.cache.Set(ctx, redis.RegimeKey(s.symbol), status, s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Regime cache write failed")
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol": s.symbol,
		"regime": status.Regime,
		"price":  status.Price,
	}).Info("Benchmark regime classified")

	return status
}
