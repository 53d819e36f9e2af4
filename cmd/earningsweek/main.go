package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"earningsweek/pkg/cache"
	"earningsweek/pkg/companies"
	"earningsweek/pkg/earnings"
	"earningsweek/pkg/ir"
	"earningsweek/pkg/marketcal"
	"earningsweek/pkg/spreadsheet"
	"earningsweek/pkg/weeks"
)

const cacheTTL = 5 * time.Minute

var (
	dataDir     = flag.String("data", "data", "Directory holding the companies_*.json sector files")
	sector      = flag.String("sector", "", "Sector to report on (see -list-sectors)")
	weekID      = flag.String("week", "", "Week selection id, e.g. 2026-02-02 (default: current week)")
	csvOut      = flag.String("csv", "", "Write the day-grouped CSV sheet to this path")
	every       = flag.Duration("every", 0, "Re-fetch on this interval instead of exiting (cached within the TTL)")
	listWeeks   = flag.Bool("list-weeks", false, "Print the selectable weeks and exit")
	listSectors = flag.Bool("list-sectors", false, "Print the configured sectors and exit")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	store, err := companies.Load(*dataDir)
	if err != nil {
		log.Fatalf("Error loading company configuration: %v", err)
	}

	if *listSectors {
		for _, name := range store.Sectors() {
			entries := store.SectorCompanies(name)
			fmt.Printf("%s (%d companies, %d public)\n", name, len(entries), len(store.SectorTickers(name)))
		}
		return
	}

	options := weeks.Options(1, 12, time.Time{})
	if *listWeeks {
		for _, option := range options {
			fmt.Printf("%s  %s\n", option.ID, option.Label)
		}
		return
	}

	if *sector == "" {
		log.Fatal("Error: -sector is required (use -list-sectors to see choices)")
	}
	if len(store.SectorCompanies(*sector)) == 0 {
		log.Fatalf("Error: unsupported sector %q", *sector)
	}

	selection := *weekID
	if selection == "" {
		selection = weeks.WeekStart(time.Time{}).Format("2006-01-02")
	}
	week, err := weeks.Find(options, selection)
	if err != nil {
		log.Fatalf("Error: %v (use -list-weeks to see choices)", err)
	}
	start, end, err := week.Window()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	service := earnings.NewService(logger)
	service.IR = ir.NewClient(logger)

	resultCache := cache.New[[]earnings.Event](cacheTTL)
	cacheKey := *sector + "|" + week.ID

	fetch := func() ([]earnings.Event, error) {
		if events, ok := resultCache.Get(cacheKey); ok {
			logger.Info("serving cached results", zap.String("key", cacheKey))
			return events, nil
		}
		events, err := service.FetchWeeklyEarnings(start, end, time.Time{}, store.SectorCompanies(*sector))
		if err != nil {
			return nil, err
		}
		resultCache.Set(cacheKey, events)
		return events, nil
	}

	report := func() error {
		events, err := fetch()
		if err != nil {
			return err
		}
		printEvents(events, store, week)

		if cal := marketcal.NewFromEnv(logger); cal != nil {
			annotateNonTradingDays(cal, logger, events, start, end)
		}

		if *csvOut != "" {
			if err := os.WriteFile(*csvOut, spreadsheet.CSVBytes(events), 0644); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
			fmt.Printf("CSV sheet written to %s\n", *csvOut)
		}
		return nil
	}

	if err := report(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	for *every > 0 {
		time.Sleep(*every)
		if err := report(); err != nil {
			logger.Warn("refresh failed", zap.Error(err))
		}
	}
}

func printEvents(events []earnings.Event, store *companies.Store, week weeks.Option) {
	fmt.Printf("%s: %d events\n", week.Label, len(events))

	data, err := json.Marshal(events)
	if err != nil {
		log.Fatalf("Error encoding results: %v", err)
	}
	os.Stdout.Write(pretty.Pretty(data))

	if missing := store.WithoutTicker(*sector); len(missing) > 0 {
		fmt.Printf("Not publicly traded (no calendar coverage): %v\n", missing)
	}
}

func annotateNonTradingDays(cal *marketcal.Calendar, logger *zap.Logger, events []earnings.Event, start, end time.Time) {
	open, err := cal.TradingDays(start, end)
	if err != nil {
		logger.Warn("trading calendar lookup failed", zap.Error(err))
		return
	}
	var dates []string
	for _, event := range events {
		dates = append(dates, event.Date)
	}
	for _, date := range cal.NonTradingDays(dates, open) {
		logger.Warn("event dated on a non-trading day", zap.String("date", date))
	}
}
