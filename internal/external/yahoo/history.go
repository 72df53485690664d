package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/minglun/v32/backend/internal/contracts"
)

// chartResponse mirrors the chart API payload. Quote arrays carry
// nulls on halted days, hence the pointer elements.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory fetches daily OHLCV bars covering the lookback window,
// oldest first. Missing or empty provider data surfaces as
// contracts.ErrUnavailable so callers can skip the symbol.
func (c *Client) FetchHistory(ctx context.Context, symbol string, lookback time.Duration) (*contracts.PriceSeries, error) {
	now := time.Now()
	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", now.Add(-lookback).Unix()))
	params.Set("period2", fmt.Sprintf("%d", now.Unix()))
	params.Set("interval", "1d")
	params.Set("events", "history")

	fullURL := fmt.Sprintf("%s/%s?%s", c.chartBaseURL, url.PathEscape(symbol), params.Encode())

	body, err := c.fetch(ctx, fullURL)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("History fetch failed")
		return nil, contracts.ErrUnavailable
	}

	series, err := parseChartResponse(symbol, body)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("History parse failed")
		return nil, contracts.ErrUnavailable
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   series.Len(),
	}).Debug("Fetched history")

	return series, nil
}

// parseChartResponse converts the chart payload into a PriceSeries,
// dropping rows without a close price.
func parseChartResponse(symbol string, body []byte) (*contracts.PriceSeries, error) {
	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode chart response: %w", err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("missing quote data")
	}
	quote := result.Indicators.Quote[0]

	series := &contracts.PriceSeries{Symbol: symbol}
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := contracts.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}

		series.Bars = append(series.Bars, bar)
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("no usable bars in chart response")
	}
	return series, nil
}
