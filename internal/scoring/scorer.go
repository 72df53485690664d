package scoring

import (
	"github.com/minglun/v32/backend/internal/contracts"
)

// Score bounds and rule weights. Rules are independent boolean gates:
// each one that holds adds its weight, nothing ever subtracts. The
// volume tiers stack deliberately, so rvol > 2.0 collects all three.
const (
	BaseScore = 60
	MaxScore  = 100

	weightAboveMA200   = 10
	weightGoldenAlign  = 10
	weightAboveMA50    = 10
	weightAboveMA20    = 10
	weightMildVolume   = 5
	weightStrongVolume = 10
	weightBreakoutVol  = 15
	weightRSISweetSpot = 10
	weightMACDCross    = 10
	weightMACDPositive = 10
)

// Scorer turns an indicator snapshot into a composite strength score.
// It is a pure function: same snapshot in, same score out.
type Scorer struct{}

// NewScorer creates a new composite scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates all rules against the snapshot and returns the
// clamped composite score in [0,100].
func (s *Scorer) Score(snap contracts.IndicatorSnapshot) int {
	score := BaseScore

	// Trend
	if snap.Close > snap.MA200 {
		score += weightAboveMA200
	}
	if snap.MA50 > snap.MA200 {
		score += weightGoldenAlign
	}
	if snap.Close > snap.MA50 {
		score += weightAboveMA50
	}
	if snap.Close > snap.MA20 {
		score += weightAboveMA20
	}

	// Volume
	if snap.RVol > 1.2 {
		score += weightMildVolume
	}
	if snap.RVol > 1.5 {
		score += weightStrongVolume
	}
	if snap.RVol > 2.0 {
		score += weightBreakoutVol
	}

	// Momentum
	if snap.RSI14 > 50 && snap.RSI14 < 75 {
		score += weightRSISweetSpot
	}
	if snap.MACD > snap.MACDSignal {
		score += weightMACDCross
	}
	if snap.MACD > 0 {
		score += weightMACDPositive
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}
