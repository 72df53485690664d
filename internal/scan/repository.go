package scan

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minglun/v32/backend/internal/contracts"
)

// Repository persists scan snapshots so scheduled rescans leave an
// inspectable trail per trading day.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new scan repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveBatch upserts one day's results for a pool
func (r *Repository) SaveBatch(ctx context.Context, poolName string, date time.Time, results []contracts.ScanResult) error {
	query := `
		INSERT INTO watchlist.scan_results
			(pool, trade_date, symbol, score, close_price, ma20, ma50, ma200,
			 rvol, rsi14, macd, macd_signal, earnings_days, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (pool, trade_date, symbol) DO UPDATE SET
			score = EXCLUDED.score,
			close_price = EXCLUDED.close_price,
			ma20 = EXCLUDED.ma20,
			ma50 = EXCLUDED.ma50,
			ma200 = EXCLUDED.ma200,
			rvol = EXCLUDED.rvol,
			rsi14 = EXCLUDED.rsi14,
			macd = EXCLUDED.macd,
			macd_signal = EXCLUDED.macd_signal,
			earnings_days = EXCLUDED.earnings_days,
			scanned_at = EXCLUDED.scanned_at
	`

	for _, res := range results {
		_, err := r.pool.Exec(ctx, query,
			poolName, date, res.Symbol, res.Score,
			res.Snapshot.Close, res.Snapshot.MA20, res.Snapshot.MA50, res.Snapshot.MA200,
			res.Snapshot.RVol, res.Snapshot.RSI14, res.Snapshot.MACD, res.Snapshot.MACDSignal,
			res.EarningsDays, res.ScannedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByPoolAndDate retrieves one day's stored results for a pool,
// ordered by score descending.
func (r *Repository) GetByPoolAndDate(ctx context.Context, poolName string, date time.Time) ([]contracts.ScanResult, error) {
	query := `
		SELECT symbol, score, close_price, ma20, ma50, ma200,
		       rvol, rsi14, macd, macd_signal, earnings_days, scanned_at
		FROM watchlist.scan_results
		WHERE pool = $1 AND trade_date = $2
		ORDER BY score DESC
	`

	rows, err := r.pool.Query(ctx, query, poolName, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []contracts.ScanResult
	for rows.Next() {
		var res contracts.ScanResult
		if err := rows.Scan(
			&res.Symbol, &res.Score,
			&res.Snapshot.Close, &res.Snapshot.MA20, &res.Snapshot.MA50, &res.Snapshot.MA200,
			&res.Snapshot.RVol, &res.Snapshot.RSI14, &res.Snapshot.MACD, &res.Snapshot.MACDSignal,
			&res.EarningsDays, &res.ScannedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
