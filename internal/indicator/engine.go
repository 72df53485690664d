package indicator

import (
	"errors"

	"github.com/minglun/v32/backend/internal/contracts"
	"github.com/minglun/v32/backend/pkg/logger"
)

// ErrInsufficientHistory is returned when a series has fewer than
// contracts.MinHistoryBars bars. Callers treat it as "skip this
// ticker", never as a hard fault.
var ErrInsufficientHistory = errors.New("insufficient price history")

// Engine computes technical indicators from a daily price series.
// It is a stateless pure function of its input: every call recomputes
// the full rolling pipeline, nothing is kept between calls.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new indicator engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Compute derives an IndicatorSnapshot from the last bar of the series
func (e *Engine) Compute(series *contracts.PriceSeries) (contracts.IndicatorSnapshot, error) {
	if series == nil || series.Len() < contracts.MinHistoryBars {
		return contracts.IndicatorSnapshot{}, ErrInsufficientHistory
	}

	closes := series.Closes()
	volumes := series.Volumes()
	curr := closes[len(closes)-1]

	macd, signal := macdLast(closes, 12, 26, 9)

	snapshot := contracts.IndicatorSnapshot{
		Close:      curr,
		MA20:       sma(closes, 20),
		MA50:       sma(closes, 50),
		MA200:      sma(closes, 200),
		RVol:       relativeVolume(volumes, 20),
		RSI14:      rsi(closes, 14),
		MACD:       macd,
		MACDSignal: signal,
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol": series.Symbol,
		"close":  snapshot.Close,
		"ma200":  snapshot.MA200,
		"rvol":   snapshot.RVol,
		"rsi":    snapshot.RSI14,
	}).Debug("Computed indicator snapshot")

	return snapshot, nil
}

// sma returns the simple mean of the last period closes
func sma(values []float64, period int) float64 {
	var sum float64
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// relativeVolume returns the latest volume over its period-day mean.
// A zero mean means "no volume signal" and yields 0 rather than an error.
func relativeVolume(volumes []int64, period int) float64 {
	if len(volumes) < period {
		return 0
	}

	var sum int64
	for _, v := range volumes[len(volumes)-period:] {
		sum += v
	}

	mean := float64(sum) / float64(period)
	if mean == 0 {
		return 0
	}

	return float64(volumes[len(volumes)-1]) / mean
}

// rsi returns the Relative Strength Index over the last period deltas.
// Zero deltas contribute to neither gains nor losses. An all-gain
// window has rs = infinity, which resolves to 100.
func rsi(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 0
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50 // flat window, no signal either way
		}
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// macdLast returns the latest MACD value and its signal line.
// Both EMAs run recursively over the whole series, seeded with the
// first value; the signal is the slow-period EMA of the MACD series.
func macdLast(closes []float64, fast, slow, signalPeriod int) (float64, float64) {
	if len(closes) == 0 {
		return 0, 0
	}

	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)

	macdSeries := make([]float64, len(closes))
	for i := range closes {
		macdSeries[i] = fastEMA[i] - slowEMA[i]
	}

	signalSeries := ema(macdSeries, signalPeriod)

	last := len(closes) - 1
	return macdSeries[last], signalSeries[last]
}

// ema returns the full recursive EMA series seeded with the first value
func ema(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / (float64(period) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}
