package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/scan"
	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/logger"
)

// PoolScanJob rescans both watchlist pools after the US close and
// persists the filtered rankings.
type PoolScanJob struct {
	scanner *scan.Scanner
	repo    *scan.Repository
	cfg     *config.Config
	logger  *logger.Logger
}

// NewPoolScanJob creates a new pool scan job
func NewPoolScanJob(scanner *scan.Scanner, repo *scan.Repository, cfg *config.Config, log *logger.Logger) *PoolScanJob {
	return &PoolScanJob{
		scanner: scanner,
		repo:    repo,
		cfg:     cfg,
		logger:  log,
	}
}

// Name returns the job name
func (j *PoolScanJob) Name() string {
	return "pool_scan"
}

// Schedule runs at 16:30 US Eastern on weekdays, after the close.
// The process is expected to run with TZ=America/New_York.
func (j *PoolScanJob) Schedule() string {
	return "0 30 16 * * 1-5"
}

// Run executes both pool scans
func (j *PoolScanJob) Run(ctx context.Context) error {
	date := time.Now().Truncate(24 * time.Hour)

	pools := []struct {
		name     string
		symbols  []string
		minScore int
		filter   func([]contracts.ScanResult, int) []contracts.ScanResult
	}{
		{scan.PoolConservative, j.cfg.Scan.ConservativePool, j.cfg.Scan.ConservativeMinScore, scan.FilterConservative},
		{scan.PoolMomentum, j.cfg.Scan.MomentumPool, j.cfg.Scan.MomentumMinScore, scan.FilterMomentum},
	}

	for _, pool := range pools {
		results := j.scanner.ScanMany(ctx, pool.symbols)
		filtered := pool.filter(results, pool.minScore)

		if err := j.repo.SaveBatch(ctx, pool.name, date, filtered); err != nil {
			return fmt.Errorf("save %s scan: %w", pool.name, err)
		}

		j.logger.WithFields(map[string]interface{}{
			"pool":    pool.name,
			"scanned": len(results),
			"kept":    len(filtered),
		}).Info("Pool scan persisted")
	}

	return nil
}
