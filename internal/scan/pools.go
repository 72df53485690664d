package scan

import (
	"sort"

	"github.com/minglun/v32/backend/internal/contracts"
)

// Pool names accepted by the API and CLI
const (
	PoolConservative = "conservative"
	PoolMomentum     = "momentum"
)

// FilterConservative keeps results at or above the score threshold and
// orders them by score, strongest first. Sorting is stable so tied
// scores keep their scan order.
func FilterConservative(results []contracts.ScanResult, minScore int) []contracts.ScanResult {
	kept := keepAbove(results, minScore)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	return kept
}

// FilterMomentum keeps results at or above the score threshold and
// orders them by relative volume, most active first. Stable sort, scan
// order breaks ties.
func FilterMomentum(results []contracts.ScanResult, minScore int) []contracts.ScanResult {
	kept := keepAbove(results, minScore)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Snapshot.RVol > kept[j].Snapshot.RVol
	})

	return kept
}

func keepAbove(results []contracts.ScanResult, minScore int) []contracts.ScanResult {
	kept := make([]contracts.ScanResult, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			kept = append(kept, r)
		}
	}
	return kept
}
