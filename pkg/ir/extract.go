package ir

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Candidate is one date mined from page text, with the clock time
// found near it (if any) and the surrounding context. Candidates are
// ephemeral; only the selected date/time pair leaves this package.
type Candidate struct {
	Date      time.Time
	TimeLabel string
	Context   string
}

// contextRadius is how far around a date token the relevance keywords
// and a clock time are searched for.
const contextRadius = 120

var datePatterns = []*regexp.Regexp{
	// January 25, 2025 / Jan. 25th 2025
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan\.?|Feb\.?|Mar\.?|Apr\.?|Jun\.?|Jul\.?|Aug\.?|Sept\.?|Sep\.?|Oct\.?|Nov\.?|Dec\.?)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	// 01/25/2025
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	// 2025-01-25
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
}

var timePattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:a\.?m\.?|p\.?m\.?)\s*(?:[A-Z]{2,3})?\b`)

// contextKeywords gate extraction: a date is only a candidate when one
// of these appears near it. IR pages are littered with dates that have
// nothing to do with earnings (copyright lines, old press items).
var contextKeywords = []string{
	"earnings",
	"results",
	"conference call",
	"quarter",
	"quarterly",
	"webcast",
}

var monthLookup = map[string]time.Month{
	"JAN": time.January, "JANUARY": time.January,
	"FEB": time.February, "FEBRUARY": time.February,
	"MAR": time.March, "MARCH": time.March,
	"APR": time.April, "APRIL": time.April,
	"MAY": time.May,
	"JUN": time.June, "JUNE": time.June,
	"JUL": time.July, "JULY": time.July,
	"AUG": time.August, "AUGUST": time.August,
	"SEP": time.September, "SEPT": time.September, "SEPTEMBER": time.September,
	"OCT": time.October, "OCTOBER": time.October,
	"NOV": time.November, "NOVEMBER": time.November,
	"DEC": time.December, "DECEMBER": time.December,
}

var monthTokenPattern = regexp.MustCompile(`^([A-Za-z.]+)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)

// ExtractCandidates mines already-stripped page text for dates that
// plausibly belong to an earnings event. Output is unordered and not
// de-duplicated; tokens that fail to parse as real calendar dates are
// dropped silently.
func ExtractCandidates(text string) []Candidate {
	var candidates []Candidate
	for _, pattern := range datePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			token := text[loc[0]:loc[1]]
			parsed, ok := parseDateToken(token)
			if !ok {
				continue
			}
			start := loc[0] - contextRadius
			if start < 0 {
				start = 0
			}
			end := loc[1] + contextRadius
			if end > len(text) {
				end = len(text)
			}
			context := text[start:end]
			if !containsKeyword(context) {
				continue
			}
			candidates = append(candidates, Candidate{
				Date:      parsed,
				TimeLabel: timePattern.FindString(context),
				Context:   strings.TrimSpace(context),
			})
		}
	}
	return candidates
}

func containsKeyword(context string) bool {
	lowered := strings.ToLower(context)
	for _, keyword := range contextKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func parseDateToken(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)

	if t, err := time.Parse("2006-01-02", token); err == nil {
		return t, true
	}
	if t, err := time.Parse("1/2/2006", token); err == nil {
		return t, true
	}

	groups := monthTokenPattern.FindStringSubmatch(token)
	if groups == nil {
		return time.Time{}, false
	}
	month, ok := monthLookup[strings.ToUpper(strings.ReplaceAll(groups[1], ".", ""))]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])

	// time.Date normalizes overflow (Feb 30 becomes Mar 2), so check
	// the components survived the round trip.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
