/*
Package companies loads the static sector -> company universe the
aggregation engine reports on. The engine never loads this itself; the
caller owns configuration.
*/
package companies

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"earningsweek/pkg/earnings"
)

// Store holds the normalized sector mapping for one process lifetime.
type Store struct {
	sectors map[string][]earnings.Company
}

type rawEntry struct {
	Name                 string `json:"name"`
	Ticker               string `json:"ticker"`
	InvestorRelationsURL string `json:"investorRelationsUrl"`
	PressFeedURL         string `json:"pressFeedUrl"`
}

// Load reads the sector shards (companies_*.json) from dir, falling
// back to a single companies.json. Malformed configuration is a fatal
// caller error, never silently patched.
func Load(dir string) (*Store, error) {
	raw := map[string][]rawEntry{}

	shards, err := filepath.Glob(filepath.Join(dir, "companies_*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing company shards: %w", err)
	}
	sort.Strings(shards)

	if len(shards) > 0 {
		for _, path := range shards {
			payload := map[string][]rawEntry{}
			if err := readJSON(path, &payload); err != nil {
				return nil, err
			}
			for sector, entries := range payload {
				raw[sector] = append(raw[sector], entries...)
			}
		}
	} else {
		path := filepath.Join(dir, "companies.json")
		if err := readJSON(path, &raw); err != nil {
			return nil, err
		}
	}

	store := &Store{sectors: map[string][]earnings.Company{}}
	for sector, entries := range raw {
		for _, entry := range entries {
			if entry.Name == "" {
				continue
			}
			store.sectors[sector] = append(store.sectors[sector], earnings.Company{
				Name:                 entry.Name,
				Ticker:               strings.ToUpper(strings.TrimSpace(entry.Ticker)),
				InvestorRelationsURL: entry.InvestorRelationsURL,
				PressFeedURL:         entry.PressFeedURL,
			})
		}
	}
	return store, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

// Sectors returns the configured sector names, sorted.
func (s *Store) Sectors() []string {
	names := make([]string, 0, len(s.sectors))
	for name := range s.sectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SectorCompanies returns the company entries for a sector.
func (s *Store) SectorCompanies(sector string) []earnings.Company {
	return s.sectors[sector]
}

// SectorTickers returns the tradable tickers for a sector, excluding
// private firms.
func (s *Store) SectorTickers(sector string) []string {
	var tickers []string
	for _, company := range s.sectors[sector] {
		if company.Ticker != "" {
			tickers = append(tickers, company.Ticker)
		}
	}
	return tickers
}

// TickerToName maps a sector's ticker symbols to display names.
func (s *Store) TickerToName(sector string) map[string]string {
	mapping := map[string]string{}
	for _, company := range s.sectors[sector] {
		if company.Ticker != "" {
			mapping[company.Ticker] = company.Name
		}
	}
	return mapping
}

// WithoutTicker returns the sector companies that are not publicly
// traded.
func (s *Store) WithoutTicker(sector string) []string {
	var names []string
	for _, company := range s.sectors[sector] {
		if company.Ticker == "" {
			names = append(names, company.Name)
		}
	}
	return names
}
