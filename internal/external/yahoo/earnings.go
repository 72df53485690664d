package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// quoteSummaryResponse carries the calendarEvents module payload
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			CalendarEvents struct {
				Earnings struct {
					EarningsDate []struct {
						Raw int64  `json:"raw"`
						Fmt string `json:"fmt"`
					} `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// FetchNextEarningsDate returns the next scheduled earnings release
// for the symbol, or nil when no usable date exists. The JSON calendar
// module is tried first; the HTML earnings calendar is a fallback for
// symbols the module does not cover. Absence is not an error.
func (c *Client) FetchNextEarningsDate(ctx context.Context, symbol string) (*time.Time, error) {
	if date := c.earningsFromQuoteSummary(ctx, symbol); date != nil {
		return date, nil
	}

	if date := c.earningsFromCalendarPage(ctx, symbol); date != nil {
		return date, nil
	}

	c.logger.WithField("symbol", symbol).Debug("No earnings date available")
	return nil, nil
}

// earningsFromQuoteSummary reads the calendarEvents module
func (c *Client) earningsFromQuoteSummary(ctx context.Context, symbol string) *time.Time {
	params := url.Values{}
	params.Set("modules", "calendarEvents")

	fullURL := fmt.Sprintf("%s/%s?%s", c.quoteBaseURL, url.PathEscape(symbol), params.Encode())

	body, err := c.fetch(ctx, fullURL)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Debug("Calendar module fetch failed")
		return nil
	}

	var payload quoteSummaryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	if len(payload.QuoteSummary.Result) == 0 {
		return nil
	}

	dates := payload.QuoteSummary.Result[0].CalendarEvents.Earnings.EarningsDate
	if len(dates) == 0 || dates[0].Raw == 0 {
		return nil
	}

	// First entry is the nearest scheduled date
	date := time.Unix(dates[0].Raw, 0).UTC()
	return &date
}

// earningsFromCalendarPage scrapes the earnings calendar page
func (c *Client) earningsFromCalendarPage(ctx context.Context, symbol string) *time.Time {
	params := url.Values{}
	params.Set("symbol", symbol)

	fullURL := fmt.Sprintf("%s?%s", c.calendarURL, params.Encode())

	body, err := c.fetch(ctx, fullURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var found *time.Time
	doc.Find("table tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cell := row.Find("td[aria-label='Earnings Date']")
		if cell.Length() == 0 {
			// Older page layout keeps the date in the third column
			cell = row.Find("td").Eq(2)
		}

		if date := parseCalendarDate(cell.Text()); date != nil {
			found = date
			return false
		}
		return true
	})

	return found
}

// parseCalendarDate parses cell text like "Nov 02, 2026, 4 PMEST"
func parseCalendarDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Keep only the "Mon 02, 2006" prefix
	parts := strings.SplitN(text, ",", 3)
	if len(parts) < 2 {
		return nil
	}
	datePart := strings.TrimSpace(parts[0] + "," + parts[1])

	date, err := time.Parse("Jan 02, 2006", datePart)
	if err != nil {
		return nil
	}

	d := date.UTC()
	return &d
}
