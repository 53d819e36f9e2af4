package earnings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FeedRow is one company row from the required per-day calendar feed.
type FeedRow struct {
	Symbol        string
	Company       string
	TimeLabel     string
	EPS           *decimal.Decimal
	EPSForecast   *decimal.Decimal
	FiscalQuarter string
}

type nasdaqPayload struct {
	Data *struct {
		Rows []nasdaqRow `json:"rows"`
	} `json:"data"`
}

type nasdaqRow struct {
	Symbol              string `json:"symbol"`
	Name                string `json:"name"`
	Time                string `json:"time"`
	EPS                 string `json:"eps"`
	EPSForecast         string `json:"epsForecast"`
	FiscalQuarterEnding string `json:"fiscalQuarterEnding"`
}

// fetchFeedDay fetches the full calendar feed for one day. The feed is
// required: a transport failure, non-2xx status or unparsable payload
// is returned as an error so the caller can skip the day and move on.
func (s *Service) fetchFeedDay(logger *zap.Logger, day time.Time) ([]FeedRow, error) {
	dateStr := day.Format("2006-01-02")

	req, err := http.NewRequest("GET", s.FeedURL+"?date="+dateStr, nil)
	if err != nil {
		return nil, fmt.Errorf("feed request for %s: %w", dateStr, err)
	}
	setBrowserHeaders(req)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed for %s: %w", dateStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned %d for %s", resp.StatusCode, dateStr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed body read failed for %s: %w", dateStr, err)
	}

	var payload nasdaqPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// The feed occasionally emits sloppy JSON. Try one repair pass
		// before giving up on the day.
		repaired, rerr := jsonrepair.JSONRepair(string(body))
		if rerr != nil {
			return nil, fmt.Errorf("feed response for %s was not valid JSON: %w", dateStr, err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return nil, fmt.Errorf("feed response for %s was not valid JSON after repair: %w", dateStr, err)
		}
		logger.Debug("feed JSON repaired", zap.String("date", dateStr))
	}

	if payload.Data == nil {
		logger.Info("feed returned empty payload", zap.String("date", dateStr))
		return nil, nil
	}

	rows := make([]FeedRow, 0, len(payload.Data.Rows))
	for _, row := range payload.Data.Rows {
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			continue
		}
		rows = append(rows, FeedRow{
			Symbol:        symbol,
			Company:       strings.TrimSpace(row.Name),
			TimeLabel:     strings.TrimSpace(row.Time),
			EPS:           parseMoney(row.EPS),
			EPSForecast:   parseMoney(row.EPSForecast),
			FiscalQuarter: row.FiscalQuarterEnding,
		})
	}
	return rows, nil
}

// parseMoney turns feed figures like "$2.04" or "($0.13)" into a
// decimal. Figures that do not parse are dropped rather than guessed.
func parseMoney(raw string) *decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	negative := strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")")
	cleaned = strings.Trim(cleaned, "()")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	if negative {
		value = value.Neg()
	}
	return &value
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
