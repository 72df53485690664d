package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minglun/v32/backend/internal/contracts"
)

// allRulesSnapshot fires every boolean rule at once
func allRulesSnapshot() contracts.IndicatorSnapshot {
	return contracts.IndicatorSnapshot{
		Close:      150,
		MA20:       140,
		MA50:       130,
		MA200:      120,
		RVol:       2.5,
		RSI14:      60,
		MACD:       2.0,
		MACDSignal: 1.0,
	}
}

// noRulesSnapshot fires none of them
func noRulesSnapshot() contracts.IndicatorSnapshot {
	return contracts.IndicatorSnapshot{
		Close:      100,
		MA20:       110,
		MA50:       120,
		MA200:      130,
		RVol:       0.8,
		RSI14:      40,
		MACD:       -1.0,
		MACDSignal: 0.5,
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer()

	// Raw sum of every weight is 60+110, clamped to the ceiling
	assert.Equal(t, MaxScore, scorer.Score(allRulesSnapshot()))
	assert.Equal(t, BaseScore, scorer.Score(noRulesSnapshot()))
}

func TestScoreIdempotent(t *testing.T) {
	scorer := NewScorer()
	snap := allRulesSnapshot()

	first := scorer.Score(snap)
	second := scorer.Score(snap)
	assert.Equal(t, first, second)
}

func TestScoreSingleRules(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name   string
		mutate func(*contracts.IndicatorSnapshot)
		want   int
	}{
		{
			name:   "above ma200 and ma50 but under ma20",
			mutate: func(s *contracts.IndicatorSnapshot) { s.Close = 135; s.MA20 = 140; s.MA50 = 130; s.MA200 = 134 },
			want:   BaseScore + weightAboveMA200 + weightAboveMA50,
		},
		{
			name:   "golden alignment only",
			mutate: func(s *contracts.IndicatorSnapshot) { s.MA50 = 135 },
			want:   BaseScore + weightGoldenAlign,
		},
		{
			name:   "rsi sweet spot only",
			mutate: func(s *contracts.IndicatorSnapshot) { s.RSI14 = 55 },
			want:   BaseScore + weightRSISweetSpot,
		},
		{
			name:   "macd above signal only",
			mutate: func(s *contracts.IndicatorSnapshot) { s.MACD = -0.5; s.MACDSignal = -1.0 },
			want:   BaseScore + weightMACDCross,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := noRulesSnapshot()
			tt.mutate(&snap)
			assert.Equal(t, tt.want, scorer.Score(snap))
		})
	}
}

func TestScoreVolumeTiersStack(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		rvol float64
		want int
	}{
		{"below first tier", 1.2, BaseScore},
		{"mild volume", 1.3, BaseScore + weightMildVolume},
		{"strong volume stacks", 1.6, BaseScore + weightMildVolume + weightStrongVolume},
		{"breakout stacks all three", 2.1, BaseScore + weightMildVolume + weightStrongVolume + weightBreakoutVol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := noRulesSnapshot()
			snap.RVol = tt.rvol
			assert.Equal(t, tt.want, scorer.Score(snap))
		})
	}
}

func TestScoreRSIBoundariesExclusive(t *testing.T) {
	scorer := NewScorer()

	for _, rsi := range []float64{50, 75} {
		snap := noRulesSnapshot()
		snap.RSI14 = rsi
		assert.Equal(t, BaseScore, scorer.Score(snap), "rsi %v must not score", rsi)
	}
}

func TestScoreTiesDoNotFire(t *testing.T) {
	scorer := NewScorer()

	// Every comparison is strict, an exact tie adds nothing
	snap := contracts.IndicatorSnapshot{
		Close:      100,
		MA20:       100,
		MA50:       100,
		MA200:      100,
		RVol:       0,
		RSI14:      0,
		MACD:       0,
		MACDSignal: 0,
	}
	assert.Equal(t, BaseScore, scorer.Score(snap))
}
