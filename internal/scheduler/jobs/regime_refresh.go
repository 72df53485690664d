package jobs

import (
	"context"
	"fmt"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/market"
	"github.com/minglun/v32/backend/pkg/logger"
)

// RegimeRefreshJob refreshes the benchmark regime classification
// during market hours so the gate stays current between pool scans.
type RegimeRefreshJob struct {
	service *market.Service
	logger  *logger.Logger
}

// NewRegimeRefreshJob creates a new regime refresh job
func NewRegimeRefreshJob(service *market.Service, log *logger.Logger) *RegimeRefreshJob {
	return &RegimeRefreshJob{
		service: service,
		logger:  log,
	}
}

// Name returns the job name
func (j *RegimeRefreshJob) Name() string {
	return "regime_refresh"
}

// Schedule runs hourly on weekdays
func (j *RegimeRefreshJob) Schedule() string {
	return "0 0 * * * 1-5"
}

// Run refreshes the benchmark regime
func (j *RegimeRefreshJob) Run(ctx context.Context) error {
	status := j.service.Status(ctx)
	if status.Regime == contracts.RegimeUnknown {
		return fmt.Errorf("benchmark %s regime unavailable", status.Symbol)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol": status.Symbol,
		"regime": status.Regime,
	}).Info("Benchmark regime refreshed")

	return nil
}
