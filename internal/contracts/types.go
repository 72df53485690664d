package contracts

import "time"

// MinHistoryBars is the minimum daily bar count required before
// any indicator is defined. Shorter histories produce no result.
const MinHistoryBars = 200

// EarningsUnknown is the sentinel for "no usable earnings date".
// It is larger than every real day-count threshold, so downstream
// rules treat unknown as "not imminent".
const EarningsUnknown = 999

// Bar represents one daily OHLCV bar
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a chronological sequence of daily bars for one symbol
type PriceSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Closes returns the closing-price sequence in chronological order
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volume sequence in chronological order
func (s *PriceSeries) Volumes() []int64 {
	volumes := make([]int64, len(s.Bars))
	for i, b := range s.Bars {
		volumes[i] = b.Volume
	}
	return volumes
}

// Last returns the most recent bar. ok is false for an empty series.
func (s *PriceSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// IndicatorSnapshot holds the most-recent value of each rolling
// computation over a price series. It is immutable once computed.
type IndicatorSnapshot struct {
	Close      float64 `json:"close"`
	MA20       float64 `json:"ma20"`
	MA50       float64 `json:"ma50"`
	MA200      float64 `json:"ma200"`
	RVol       float64 `json:"rvol"`
	RSI14      float64 `json:"rsi14"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
}

// Regime classifies the benchmark index trend state
type Regime string

const (
	RegimeBullish    Regime = "bullish"
	RegimeCorrection Regime = "correction"
	RegimeWeak       Regime = "weak"
	RegimeBearish    Regime = "bearish"
	RegimeUnknown    Regime = "unknown"
)

// MarketStatus is the benchmark regime snapshot for presentation
type MarketStatus struct {
	Symbol string    `json:"symbol"`
	Regime Regime    `json:"regime"`
	Price  float64   `json:"price"`
	MA200  float64   `json:"ma200"`
	AsOf   time.Time `json:"as_of"`
}

// ScanResult is the per-ticker scoring output, recomputed per scan
type ScanResult struct {
	Symbol       string            `json:"symbol"`
	Snapshot     IndicatorSnapshot `json:"snapshot"`
	Score        int               `json:"score"`
	EarningsDays int               `json:"earnings_days"`
	DistMA200Pct float64           `json:"dist_ma200_pct"` // % distance of close from MA200
	ScannedAt    time.Time         `json:"scanned_at"`
}

// Position category constants
const (
	PositionDefensive  = "defensive"
	PositionAggressive = "aggressive"
)

// Position is one holding record. The field names Code, Type, Cost,
// Shares and Note are the storage contract and must not change.
type Position struct {
	ID     int64   `json:"id"`
	Code   string  `json:"Code"`
	Type   string  `json:"Type"`
	Cost   float64 `json:"Cost"`
	Shares float64 `json:"Shares"`
	Note   string  `json:"Note"`
}

// Advisory labels, ordered by priority
const (
	AdviceEarningsRisk = "earnings risk exit"
	AdviceWeakening    = "weakening, watch"
	AdviceHold         = "hold"
)

// HoldingReport joins a position with its fresh scan result
type HoldingReport struct {
	Code         string  `json:"code"`
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	Shares       float64 `json:"shares"`
	Price        float64 `json:"price"`
	Profit       float64 `json:"profit"`
	ProfitPct    float64 `json:"profit_pct"`
	EarningsDays int     `json:"earnings_days"`
	Score        int     `json:"score"`
	Advice       string  `json:"advice"`
}
