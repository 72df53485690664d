package regime

import (
	"github.com/minglun/v32/backend/internal/contracts"
)

// Classify maps a benchmark snapshot onto a regime label. The ladder
// is evaluated in order and the first match wins; every comparison is
// strictly greater-than, so an exact tie falls to the weaker branch.
// The function is total: every valid snapshot gets exactly one of the
// four concrete labels.
func Classify(snap contracts.IndicatorSnapshot) contracts.Regime {
	if snap.Close <= snap.MA200 {
		return contracts.RegimeBearish
	}

	switch {
	case snap.Close > snap.MA20:
		return contracts.RegimeBullish
	case snap.Close > snap.MA50:
		return contracts.RegimeCorrection
	default:
		return contracts.RegimeWeak
	}
}
