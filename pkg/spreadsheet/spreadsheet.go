/*
Package spreadsheet renders merged earnings events as the day-grouped
CSV hand-off sheet.
*/
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strings"
	"time"

	"earningsweek/pkg/earnings"
)

var outputFields = []string{"Company", "BMO/AMC", "Time", "Coverage", "Reporter"}

// NormalizeSessionLabel converts upstream session labels into the
// BMO/AMC phrasing used on the sheet. This vocabulary is intentionally
// separate from the engine's fetch-time table: it targets the phrase
// set that shows up in exported raw labels, not the calendar feeds.
func NormalizeSessionLabel(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "TBD"
	}
	normalized := strings.ToLower(value)
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	switch normalized {
	case "time-after-hours", "after-hours", "afterhours":
		return "AMC"
	case "time-pre-market", "pre-market", "premarket":
		return "BMO"
	case "bmo", "amc":
		return strings.ToUpper(normalized)
	}
	return value
}

// formatDateLabel renders an ISO date as a friendly grouping header
// like "Monday, October 6, 2025". Unparsable input passes through.
func formatDateLabel(dateStr string) string {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return parsed.Format("Monday, January 2, 2006")
}

// BuildRows returns the sheet rows: a grouping header before each new
// date, then one row per company. Events sort by date, then by
// lowercased company name.
func BuildRows(events []earnings.Event) [][]string {
	sorted := make([]earnings.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return strings.ToLower(sorted[i].Company) < strings.ToLower(sorted[j].Company)
	})

	var rows [][]string
	previousDate := ""
	for _, event := range sorted {
		if event.Date != "" && event.Date != previousDate {
			rows = append(rows, []string{formatDateLabel(event.Date), "", "", "", ""})
			previousDate = event.Date
		}
		rows = append(rows, []string{
			event.Company,
			NormalizeSessionLabel(event.Session),
			event.IRTimeLabel,
			"",
			"",
		})
	}
	return rows
}

// CSVBytes renders the sheet with a UTF-8 BOM so spreadsheet apps pick
// the right encoding.
func CSVBytes(events []earnings.Event) []byte {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	writer := csv.NewWriter(&buf)
	_ = writer.Write(outputFields)
	for _, row := range BuildRows(events) {
		_ = writer.Write(row)
	}
	writer.Flush()
	return buf.Bytes()
}
