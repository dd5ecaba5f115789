// Package dates parses post dates and renders them for display.
//
// Bare calendar dates ("2025-04-27") are anchored at midnight UTC so the
// displayed day never drifts with the host timezone.
package dates

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Placeholder is returned by Format for dates that cannot be parsed.
const Placeholder = "Invalid Date"

// LongLayout renders the long-form calendar date, e.g. "April 27, 2025".
const LongLayout = "January 2, 2006"

// ErrInvalidDate is returned by Parse for unparsable input.
var ErrInvalidDate = errors.New("invalid date")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse reads a publishedAt value. Strings without a time component are
// treated as midnight UTC of that day; timestamps are taken as-is.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if !strings.Contains(s, "T") {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	// Inputs without a year come back in year 0; they are not calendar dates.
	if err != nil || t.Year() == 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Formatter renders display dates relative to a clock.
type Formatter struct {
	Now    func() time.Time
	Logger *slog.Logger
}

// NewFormatter returns a Formatter on the wall clock.
func NewFormatter(logger *slog.Logger) *Formatter {
	return &Formatter{Now: time.Now, Logger: logger}
}

// Format renders date in long form, optionally followed by a relative age,
// e.g. "April 27, 2025 (1 year ago)". It never fails: unparsable input
// yields Placeholder.
func (f *Formatter) Format(date string, includeRelative bool) string {
	t, err := Parse(date)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Warn("invalid date format encountered", "date", date)
		}
		return Placeholder
	}

	full := t.UTC().Format(LongLayout)
	if !includeRelative {
		return full
	}
	return fmt.Sprintf("%s (%s)", full, Relative(t, f.now()))
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// FormatDisplayDate formats date against the wall clock using the default logger.
func FormatDisplayDate(date string, includeRelative bool) string {
	return NewFormatter(slog.Default()).Format(date, includeRelative)
}

// Relative returns the coarse age of target as seen from now: whole years,
// else whole months, else whole days, else "Today". Both are compared as UTC
// calendar days; a target later than now is "Today".
func Relative(target, now time.Time) string {
	target = truncateDay(target)
	now = truncateDay(now)
	if !target.Before(now) {
		return "Today"
	}

	years := now.Year() - target.Year()
	months := int(now.Month()) - int(target.Month())
	days := now.Day() - target.Day()

	if days < 0 {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years > 0:
		return ago(years, "year")
	case months > 0:
		return ago(months, "month")
	}

	if days < 0 {
		// The month borrow left us inside the previous month; count the
		// remaining days from that anchor.
		anchor := target.AddDate(years, months, 0)
		days = int(now.Sub(anchor).Hours() / 24)
	}
	if days > 0 {
		return ago(days, "day")
	}
	return "Today"
}

func ago(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
