/*
Package weeks builds the selectable Monday-to-Friday reporting windows.
*/
package weeks

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownWeek is returned when a selection id matches no option.
var ErrUnknownWeek = errors.New("unknown week selection")

// Option is one selectable week. ID doubles as the ISO start date.
type Option struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

// Reporting weeks pivot on the US market clock.
var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// WeekStart returns the Monday of the week containing reference, or of
// the current Eastern week when reference is zero.
func WeekStart(reference time.Time) time.Time {
	if reference.IsZero() {
		reference = time.Now().In(eastern)
	}
	// time.Weekday counts Sunday as 0; shift so Monday is the anchor.
	offset := (int(reference.Weekday()) + 6) % 7
	day := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// Options returns the selectable weeks around reference, ordered by
// start date: weeksBack past weeks and weeksAhead-1 future ones plus
// the current week. Each window runs Monday through Friday.
func Options(weeksBack, weeksAhead int, reference time.Time) []Option {
	base := WeekStart(reference)
	var options []Option
	for offset := -weeksBack; offset < weeksAhead; offset++ {
		start := base.AddDate(0, 0, 7*offset)
		end := start.AddDate(0, 0, 4)
		options = append(options, Option{
			ID:        start.Format("2006-01-02"),
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
			Label:     fmt.Sprintf("Week of %s to %s", start.Format("Jan 2"), end.Format("Jan 2")),
		})
	}
	return options
}

// Find resolves a week selection id against the offered options.
func Find(options []Option, id string) (Option, error) {
	for _, option := range options {
		if option.ID == id {
			return option, nil
		}
	}
	return Option{}, ErrUnknownWeek
}

// Window parses an option back into its inclusive date bounds.
func (o Option) Window() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", o.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("week start %q: %w", o.StartDate, err)
	}
	end, err = time.Parse("2006-01-02", o.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("week end %q: %w", o.EndDate, err)
	}
	return start, end, nil
}
