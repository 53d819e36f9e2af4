package ir

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCandidatesMonthNameDate(t *testing.T) {
	text := "Apple Inc. will report fourth quarter earnings on January 28, 2026 at 4:30 p.m. ET followed by a webcast."

	candidates := ExtractCandidates(text)
	require.Len(t, candidates, 1)
	assert.Equal(t, time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC), candidates[0].Date)
	assert.Equal(t, "4:30 p.m. ET", candidates[0].TimeLabel)
	assert.Contains(t, candidates[0].Context, "fourth quarter earnings")
}

func TestExtractCandidatesAbbreviatedAndOrdinal(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"Quarterly results call on Jan. 5th, 2026.", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"Sept 3, 2026 earnings webcast registration.", time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)},
		{"Earnings call scheduled for 01/28/2026.", time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC)},
		{"Conference call on 2026-01-28 at 8:00 a.m.", time.Date(2026, time.January, 28, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		candidates := ExtractCandidates(tc.text)
		require.Len(t, candidates, 1, "text %q", tc.text)
		assert.Equal(t, tc.want, candidates[0].Date, "text %q", tc.text)
	}
}

func TestExtractCandidatesRequiresNearbyKeyword(t *testing.T) {
	// The keyword sits well outside the context window around the date,
	// so the date is treated as unrelated page chrome.
	padding := strings.Repeat("x ", 80)
	text := "earnings " + padding + "January 28, 2026 " + padding

	assert.Empty(t, ExtractCandidates(text))

	// Same date with the keyword adjacent is a candidate.
	assert.Len(t, ExtractCandidates("earnings on January 28, 2026"), 1)
}

func TestExtractCandidatesIgnoresBareDates(t *testing.T) {
	assert.Empty(t, ExtractCandidates("Copyright 2014-2026 Example Corp. Privacy updated January 28, 2026."))
}

func TestExtractCandidatesDropsImpossibleDates(t *testing.T) {
	assert.Empty(t, ExtractCandidates("Quarterly results expected February 30, 2026."))
	assert.Empty(t, ExtractCandidates("Quarterly results expected 13/45/2026."))
}

func TestExtractCandidatesKeepsDuplicateFormats(t *testing.T) {
	// The same day written twice yields two candidates; selection, not
	// extraction, de-duplicates.
	text := "Earnings on January 28, 2026 (2026-01-28), webcast to follow."
	candidates := ExtractCandidates(text)
	require.Len(t, candidates, 2)
	assert.Equal(t, candidates[0].Date, candidates[1].Date)
}

func TestPickEventPrefersEarliestOnOrAfterToday(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	candidates := []Candidate{
		{Date: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), TimeLabel: "later"},
		{Date: time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), TimeLabel: "sooner"},
	}

	selected := pickEvent(candidates, today)
	require.NotNil(t, selected)
	assert.Equal(t, "sooner", selected.TimeLabel)
}

func TestPickEventTodayIsInclusive(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	candidates := []Candidate{{Date: today, TimeLabel: "today"}}

	selected := pickEvent(candidates, today)
	require.NotNil(t, selected)
	assert.Equal(t, "today", selected.TimeLabel)
}

func TestPickEventTieGoesToFirstExtracted(t *testing.T) {
	date := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	candidates := []Candidate{
		{Date: date, TimeLabel: "first"},
		{Date: date, TimeLabel: "second"},
	}

	selected := pickEvent(candidates, time.Time{})
	require.NotNil(t, selected)
	assert.Equal(t, "first", selected.TimeLabel)
}

func TestPickEventAllPastReturnsNil(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	candidates := []Candidate{
		{Date: time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC)},
	}
	assert.Nil(t, pickEvent(candidates, today))
}
