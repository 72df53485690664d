package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minglun/v32/backend/internal/contracts"
)

func result(symbol string, score int, rvol float64) contracts.ScanResult {
	return contracts.ScanResult{
		Symbol:   symbol,
		Score:    score,
		Snapshot: contracts.IndicatorSnapshot{RVol: rvol},
	}
}

func symbols(results []contracts.ScanResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Symbol
	}
	return out
}

func TestFilterConservative(t *testing.T) {
	results := []contracts.ScanResult{
		result("AAPL", 72, 1.0),
		result("MSFT", 65, 1.0),
		result("NVDA", 90, 1.0),
		result("COST", 71, 1.0),
	}

	got := FilterConservative(results, 70)

	assert.Equal(t, []string{"NVDA", "AAPL", "COST"}, symbols(got))
}

func TestFilterConservativeThresholdInclusive(t *testing.T) {
	results := []contracts.ScanResult{
		result("AAPL", 70, 1.0),
		result("MSFT", 69, 1.0),
	}

	got := FilterConservative(results, 70)

	assert.Equal(t, []string{"AAPL"}, symbols(got))
}

func TestFilterConservativeStableTies(t *testing.T) {
	results := []contracts.ScanResult{
		result("AAPL", 80, 1.0),
		result("MSFT", 80, 1.0),
		result("NVDA", 80, 1.0),
	}

	got := FilterConservative(results, 70)

	// Tied scores keep their scan order
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, symbols(got))
}

func TestFilterMomentum(t *testing.T) {
	results := []contracts.ScanResult{
		result("PLTR", 85, 1.1),
		result("SOFI", 70, 9.9),
		result("MARA", 80, 2.4),
		result("COIN", 95, 1.8),
	}

	got := FilterMomentum(results, 80)

	// SOFI dropped on score despite the biggest volume spike; the rest
	// are ordered by relative volume, not score.
	assert.Equal(t, []string{"MARA", "COIN", "PLTR"}, symbols(got))
}

func TestFilterMomentumStableTies(t *testing.T) {
	results := []contracts.ScanResult{
		result("GME", 88, 2.0),
		result("RBLX", 82, 2.0),
		result("AFRM", 90, 2.0),
	}

	got := FilterMomentum(results, 80)

	assert.Equal(t, []string{"GME", "RBLX", "AFRM"}, symbols(got))
}

func TestFiltersEmptyInput(t *testing.T) {
	assert.Empty(t, FilterConservative(nil, 70))
	assert.Empty(t, FilterMomentum(nil, 80))
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	results := []contracts.ScanResult{
		result("AAPL", 72, 1.0),
		result("NVDA", 90, 2.0),
	}

	_ = FilterConservative(results, 70)

	assert.Equal(t, []string{"AAPL", "NVDA"}, symbols(results))
}
