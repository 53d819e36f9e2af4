/*
Package ir mines company investor-relations pages (and optional
press-release feeds) for upcoming earnings announcement dates.
*/
package ir

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"earningsweek/pkg/earnings"
	"earningsweek/pkg/taskgroup"
)

const (
	requestTimeout = 20 * time.Second
	maxWorkers     = 20
)

// Client fetches each company's IR page concurrently and selects at
// most one upcoming event per ticker. Every per-company failure is
// local: it is logged and the company simply contributes no event.
type Client struct {
	HTTPClient *http.Client
	Logger     *zap.Logger

	// Extract is the free-text mining strategy. It defaults to
	// ExtractCandidates and is replaceable because date mining is
	// heuristic and tuned independently of everything around it.
	Extract func(text string) []Candidate
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Logger:     logger,
		Extract:    ExtractCandidates,
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// FetchEvents looks up every company with a ticker and at least one
// lookup URL and returns ticker -> the earliest announcement dated on
// or after today. Companies with nothing to look up are skipped, not
// errors.
func (c *Client) FetchEvents(companies []earnings.Company, today time.Time) map[string]earnings.IREvent {
	byTicker := map[string]earnings.Company{}
	var tickers []string
	for _, company := range companies {
		if company.Ticker == "" {
			continue
		}
		if company.InvestorRelationsURL == "" && company.PressFeedURL == "" {
			continue
		}
		if _, seen := byTicker[company.Ticker]; seen {
			continue
		}
		byTicker[company.Ticker] = company
		tickers = append(tickers, company.Ticker)
	}
	if len(tickers) == 0 {
		return map[string]earnings.IREvent{}
	}

	workers := len(tickers)
	if workers > maxWorkers {
		workers = maxWorkers
	}

	found := taskgroup.Collect(tickers, workers, func(ticker string) (*earnings.IREvent, error) {
		return c.lookupCompany(byTicker[ticker], today)
	}, func(ticker string, err error) {
		c.logger().Debug("IR lookup failed", zap.String("ticker", ticker), zap.Error(err))
	})

	events := make(map[string]earnings.IREvent, len(found))
	for ticker, event := range found {
		if event != nil {
			events[ticker] = *event
		}
	}
	return events
}

// lookupCompany gathers candidates from the IR page and press feed and
// picks one. A nil event with nil error means nothing usable was found.
func (c *Client) lookupCompany(company earnings.Company, today time.Time) (*earnings.IREvent, error) {
	var candidates []Candidate
	sourceURL := company.InvestorRelationsURL

	if company.InvestorRelationsURL != "" {
		text, err := c.fetchPageText(company.InvestorRelationsURL)
		if err != nil {
			c.logger().Debug("IR page fetch failed",
				zap.String("ticker", company.Ticker),
				zap.String("url", company.InvestorRelationsURL),
				zap.Error(err))
		} else if text != "" {
			candidates = append(candidates, c.Extract(text)...)
		}
	}

	if company.PressFeedURL != "" {
		feedCandidates := c.fetchFeedCandidates(company.PressFeedURL)
		if len(candidates) == 0 && len(feedCandidates) > 0 && sourceURL == "" {
			sourceURL = company.PressFeedURL
		}
		candidates = append(candidates, feedCandidates...)
	}

	selected := pickEvent(candidates, today)
	if selected == nil {
		return nil, nil
	}

	name := company.Name
	if name == "" {
		name = company.Ticker
	}
	return &earnings.IREvent{
		Symbol:    company.Ticker,
		Company:   name,
		Date:      selected.Date,
		TimeLabel: selected.TimeLabel,
		SourceURL: sourceURL,
	}, nil
}

// fetchPageText reduces an IR page to its visible text.
func (c *Client) fetchPageText(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// fetchFeedCandidates mines a press-release feed's item titles and
// descriptions. Strictly best-effort; a broken feed contributes
// nothing.
func (c *Client) fetchFeedCandidates(feedURL string) []Candidate {
	parser := gofeed.NewParser()
	parser.Client = c.HTTPClient

	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		c.logger().Debug("press feed fetch failed", zap.String("url", feedURL), zap.Error(err))
		return nil
	}

	var candidates []Candidate
	for _, item := range feed.Items {
		text := strings.TrimSpace(item.Title + " " + item.Description)
		if text == "" {
			continue
		}
		candidates = append(candidates, c.Extract(text)...)
	}
	return candidates
}

// pickEvent keeps candidates dated today or later and returns the
// earliest. Candidates sharing the earliest date resolve to the first
// one extracted; pattern order is fixed, so the choice is
// deterministic for a given page.
func pickEvent(candidates []Candidate, today time.Time) *Candidate {
	var best *Candidate
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.Date.Before(today) {
			continue
		}
		if best == nil || candidate.Date.Before(best.Date) {
			best = candidate
		}
	}
	return best
}

// StatusError reports a non-2xx response from an IR page.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
