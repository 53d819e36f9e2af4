package earnings

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// fetchSessionLookup scrapes the per-day session-timing page and
// returns ticker -> normalized session code for tickers in the
// universe. This source is strictly best-effort: any failure yields an
// empty lookup and the day carries on without it.
func (s *Service) fetchSessionLookup(logger *zap.Logger, day time.Time, tickers map[string]bool) map[string]string {
	dateStr := day.Format("2006-01-02")
	lookup := map[string]string{}

	req, err := http.NewRequest("GET", s.SessionURL+"?day="+dateStr, nil)
	if err != nil {
		logger.Warn("session lookup request failed", zap.String("date", dateStr), zap.Error(err))
		return lookup
	}
	setBrowserHeaders(req)

	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Warn("session lookup fetch failed", zap.String("date", dateStr), zap.Error(err))
		return lookup
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("session lookup returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.String("date", dateStr))
		return lookup
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		logger.Warn("session lookup HTML parse failed", zap.String("date", dateStr), zap.Error(err))
		return lookup
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		logger.Debug("session lookup table missing", zap.String("date", dateStr))
		return lookup
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		symbol := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		if symbol == "" {
			return
		}
		if len(tickers) > 0 && !tickers[symbol] {
			return
		}
		callTime := strings.ToUpper(strings.TrimSpace(cells.Eq(3).Text()))
		lookup[symbol] = NormalizeCallWindow(callTime)
	})
	return lookup
}
