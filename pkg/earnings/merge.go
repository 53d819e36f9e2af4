package earnings

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultFeedURL    = "https://api.nasdaq.com/api/calendar/earnings"
	defaultSessionURL = "https://finance.yahoo.com/calendar/earnings"

	requestTimeout = 20 * time.Second
)

// ErrInvalidWindow is returned when the caller asks for a window whose
// start falls after its end. It is the only structural failure of a
// fetch; everything upstream-shaped degrades to partial data instead.
var ErrInvalidWindow = errors.New("start date must not be after end date")

// Service aggregates the week's earnings announcements from the
// required calendar feed, the best-effort session-timing page and the
// per-company investor-relations lookups. It holds no state across
// calls; any result caching belongs to the caller.
type Service struct {
	FeedURL    string
	SessionURL string
	Client     *http.Client
	IR         IRSource
	Logger     *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		FeedURL:    defaultFeedURL,
		SessionURL: defaultSessionURL,
		Client:     &http.Client{Timeout: requestTimeout},
		Logger:     logger,
	}
}

func (s *Service) baseLogger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

type eventKey struct {
	symbol string
	date   string
}

// FetchWeeklyEarnings returns the merged, de-duplicated announcement
// list for every company in the universe between start and end
// inclusive. today anchors the investor-relations future-date filter
// and defaults to the current local date when zero.
func (s *Service) FetchWeeklyEarnings(start, end, today time.Time, companies []Company) ([]Event, error) {
	start = civilDate(start)
	end = civilDate(end)
	if start.After(end) {
		return nil, ErrInvalidWindow
	}
	if today.IsZero() {
		today = time.Now()
	}
	today = civilDate(today)

	logger := s.baseLogger().With(zap.String("run_id", uuid.NewString()))

	tickerToName := map[string]string{}
	for _, company := range companies {
		if company.Ticker != "" {
			tickerToName[company.Ticker] = company.Name
		}
	}
	tickers := map[string]bool{}
	for symbol := range tickerToName {
		tickers[symbol] = true
	}

	results := []Event{}
	lookup := map[eventKey]int{}

	// Seed with investor-relations disclosures first. A company's own
	// page is the higher-trust source; aggregator rows later enrich
	// these entries but never overwrite a real session value.
	if s.IR != nil {
		for symbol, irEvent := range s.IR.FetchEvents(companies, today) {
			eventDate := civilDate(irEvent.Date)
			if eventDate.Before(today) || !tickers[symbol] {
				continue
			}
			if eventDate.Before(start) || eventDate.After(end) {
				continue
			}
			key := eventKey{symbol: symbol, date: eventDate.Format("2006-01-02")}
			if _, exists := lookup[key]; exists {
				continue
			}
			results = append(results, Event{
				Company:     irEvent.Company,
				Symbol:      symbol,
				Date:        key.date,
				Session:     NormalizeCallWindow(irEvent.TimeLabel),
				IRTimeLabel: irEvent.TimeLabel,
				IRSourceURL: irEvent.SourceURL,
				Source:      SourceInvestorRelations,
			})
			lookup[key] = len(results) - 1
		}
	}

	feedDays := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		sessionLookup := s.fetchSessionLookup(logger, day, tickers)

		rows, err := s.fetchFeedDay(logger, day)
		if err != nil {
			logger.Warn("skipping feed data for day",
				zap.String("date", day.Format("2006-01-02")), zap.Error(err))
			continue
		}
		feedDays++

		for _, row := range rows {
			if !tickers[row.Symbol] {
				continue
			}
			key := eventKey{symbol: row.Symbol, date: day.Format("2006-01-02")}
			sessionCall := sessionLookup[row.Symbol]
			fallbackCall := NormalizeCallWindow(row.TimeLabel)

			if idx, ok := lookup[key]; ok {
				enrich(&results[idx], row, sessionCall, fallbackCall)
				continue
			}

			session := sessionCall
			if session == "" {
				session = fallbackCall
			}
			results = append(results, Event{
				Company:         displayName(tickerToName, row),
				Symbol:          row.Symbol,
				Date:            key.date,
				Session:         session,
				NasdaqTimeLabel: row.TimeLabel,
				YahooTimeLabel:  sessionCall,
				Source:          SourceAggregator,
				EPS:             row.EPS,
				EPSForecast:     row.EPSForecast,
				FiscalQuarter:   row.FiscalQuarter,
			})
			lookup[key] = len(results) - 1
		}
	}

	if feedDays == 0 {
		logger.Warn("required feed failed for every day in window",
			zap.String("start", start.Format("2006-01-02")),
			zap.String("end", end.Format("2006-01-02")))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Date != results[j].Date {
			return results[i].Date < results[j].Date
		}
		return results[i].Company < results[j].Company
	})
	return results, nil
}

// enrich folds an aggregator row into an already-seeded event. Raw
// labels are always recorded; the session only tightens from TBD or
// empty to a real value, never the other way.
func enrich(event *Event, row FeedRow, sessionCall, fallbackCall string) {
	if sessionCall != "" {
		event.YahooTimeLabel = sessionCall
		if event.Session == "" || event.Session == SessionTBD {
			event.Session = sessionCall
		}
	}
	if row.TimeLabel != "" {
		event.NasdaqTimeLabel = row.TimeLabel
		if event.Session == "" || event.Session == SessionTBD {
			event.Session = fallbackCall
		}
	}
	if event.EPS == nil {
		event.EPS = row.EPS
	}
	if event.EPSForecast == nil {
		event.EPSForecast = row.EPSForecast
	}
	if event.FiscalQuarter == "" {
		event.FiscalQuarter = row.FiscalQuarter
	}
}

func displayName(tickerToName map[string]string, row FeedRow) string {
	if name := tickerToName[row.Symbol]; name != "" {
		return name
	}
	if row.Company != "" {
		return row.Company
	}
	return row.Symbol
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
