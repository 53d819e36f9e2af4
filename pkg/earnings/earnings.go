package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical call-timing codes. Labels that match none of the known
// vocabularies pass through uppercased instead.
const (
	SessionBMO = "BMO"
	SessionAMC = "AMC"
	SessionDMH = "DMH"
	SessionTBD = "TBD"
)

// Source tags for merged events.
const (
	SourceInvestorRelations = "investor_relations"
	SourceAggregator        = "aggregator"
)

// Company is one entry of the caller-supplied universe. A missing
// ticker or IR URL disables the corresponding source for that company.
type Company struct {
	Name                 string `json:"name"`
	Ticker               string `json:"ticker,omitempty"`
	InvestorRelationsURL string `json:"investorRelationsUrl,omitempty"`
	PressFeedURL         string `json:"pressFeedUrl,omitempty"`
}

// Event is one merged earnings announcement. Identity is (Symbol, Date)
// and is unique across a merge result.
type Event struct {
	Company         string           `json:"company"`
	Symbol          string           `json:"symbol"`
	Date            string           `json:"date"` // ISO-8601 calendar date
	Session         string           `json:"bmo_amc"`
	NasdaqTimeLabel string           `json:"nasdaq_time_label,omitempty"`
	YahooTimeLabel  string           `json:"yahoo_time_label,omitempty"`
	IRTimeLabel     string           `json:"ir_time_label,omitempty"`
	IRSourceURL     string           `json:"ir_source_url,omitempty"`
	Source          string           `json:"source"`
	EPS             *decimal.Decimal `json:"eps,omitempty"`
	EPSForecast     *decimal.Decimal `json:"eps_forecast,omitempty"`
	FiscalQuarter   string           `json:"fiscal_quarter,omitempty"`
}

// IREvent is a single upcoming announcement mined from a company's own
// investor-relations page.
type IREvent struct {
	Symbol    string
	Company   string
	Date      time.Time
	TimeLabel string
	SourceURL string
}

// IRSource yields at most one upcoming event per ticker. The concrete
// implementation lives in pkg/ir; the engine only needs the mapping.
type IRSource interface {
	FetchEvents(companies []Company, today time.Time) map[string]IREvent
}
