package holdings

import (
	"context"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/internal/scan"
	"github.com/minglun/v32/backend/pkg/logger"
)

// Evaluator joins stored positions with fresh scan results and
// produces holding-level advisories. It carries no session state:
// every call reloads positions and rescans their symbols.
type Evaluator struct {
	store   contracts.PositionStore
	scanner *scan.Scanner
	logger  *logger.Logger
}

// NewEvaluator creates a new holdings evaluator
func NewEvaluator(store contracts.PositionStore, scanner *scan.Scanner, log *logger.Logger) *Evaluator {
	return &Evaluator{
		store:   store,
		scanner: scanner,
		logger:  log,
	}
}

// Report scans every held symbol and builds one advisory row per
// position. A position whose symbol produced no scan result is left
// out of the report entirely; absence means "data unavailable", not a
// zero-valued row. The second return value is the total profit across
// reported positions.
func (e *Evaluator) Report(ctx context.Context) ([]contracts.HoldingReport, float64, error) {
	positions, err := e.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(positions) == 0 {
		return nil, 0, nil
	}

	results := e.scanner.ScanMany(ctx, distinctCodes(positions))

	bySymbol := make(map[string]contracts.ScanResult, len(results))
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}

	reports := make([]contracts.HoldingReport, 0, len(positions))
	var totalProfit float64

	for _, p := range positions {
		result, ok := bySymbol[p.Code]
		if !ok {
			e.logger.WithField("code", p.Code).Debug("No scan result for holding, omitting")
			continue
		}

		report := buildReport(p, result)
		totalProfit += report.Profit
		reports = append(reports, report)
	}

	e.logger.WithFields(map[string]interface{}{
		"positions": len(positions),
		"reported":  len(reports),
	}).Info("Holdings report built")

	return reports, totalProfit, nil
}

// buildReport computes profit figures and the advisory for a single
// position. Advisory priority: imminent earnings beats a weak score,
// which beats the default hold.
func buildReport(p contracts.Position, result contracts.ScanResult) contracts.HoldingReport {
	price := result.Snapshot.Close
	profit := (price - p.Cost) * p.Shares
	profitPct := (price - p.Cost) / p.Cost * 100

	advice := contracts.AdviceHold
	if result.EarningsDays <= 5 {
		advice = contracts.AdviceEarningsRisk
	} else if result.Score < 60 {
		advice = contracts.AdviceWeakening
	}

	return contracts.HoldingReport{
		Code:         p.Code,
		Type:         p.Type,
		Cost:         p.Cost,
		Shares:       p.Shares,
		Price:        price,
		Profit:       profit,
		ProfitPct:    profitPct,
		EarningsDays: result.EarningsDays,
		Score:        result.Score,
		Advice:       advice,
	}
}

// distinctCodes returns each held code once, keeping first-seen order
func distinctCodes(positions []contracts.Position) []string {
	seen := make(map[string]bool, len(positions))
	codes := make([]string, 0, len(positions))
	for _, p := range positions {
		if !seen[p.Code] {
			seen[p.Code] = true
			codes = append(codes, p.Code)
		}
	}
	return codes
}
