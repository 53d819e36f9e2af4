/*
Package marketcal answers which days in a window the market actually
trades, via the Alpaca calendar API. The lookup is optional: without
credentials the CLI simply skips the annotation.
*/
package marketcal

import (
	"fmt"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"go.uber.org/zap"
)

// Calendar wraps the Alpaca trading-calendar endpoint.
type Calendar struct {
	client *alpaca.Client
	logger *zap.Logger
}

// NewFromEnv builds a Calendar from ALPACA_API_KEY / ALPACA_SECRET_KEY.
// Returns nil when the keys are absent; callers treat nil as "feature
// off".
func NewFromEnv(logger *zap.Logger) *Calendar {
	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey == "" || apiSecret == "" {
		return nil
	}

	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   os.Getenv("ALPACA_BASE_URL"),
	})
	return &Calendar{client: client, logger: logger}
}

// TradingDays returns the set of ISO dates between start and end on
// which the market is open.
func (c *Calendar) TradingDays(start, end time.Time) (map[string]bool, error) {
	days, err := c.client.GetCalendar(alpaca.GetCalendarRequest{
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching trading calendar: %w", err)
	}

	open := make(map[string]bool, len(days))
	for _, day := range days {
		open[day.Date] = true
	}
	return open, nil
}

// NonTradingDays filters the given ISO dates down to those the market
// is closed on.
func (c *Calendar) NonTradingDays(dates []string, open map[string]bool) []string {
	var closed []string
	for _, date := range dates {
		if !open[date] {
			closed = append(closed, date)
		}
	}
	return closed
}
