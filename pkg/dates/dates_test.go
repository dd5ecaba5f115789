package dates_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/dates"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParse(t *testing.T) {
	t.Run("Bare Date Is Midnight UTC", func(t *testing.T) {
		got, err := dates.Parse("2025-04-27")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("Timestamp Keeps Its Offset", func(t *testing.T) {
		got, err := dates.Parse("2025-04-27T23:30:00-03:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 4, 28, 2, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("Timestamp Without Zone", func(t *testing.T) {
		got, err := dates.Parse("2025-04-27T08:15:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 4, 27, 8, 15, 0, 0, time.UTC), got)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		for _, in := range []string{"", "   ", "not-a-date", "12:", "1/", "Mon Jan  2"} {
			_, err := dates.Parse(in)
			assert.ErrorIs(t, err, dates.ErrInvalidDate, "input %q", in)
		}
	})
}

func TestFormatter_Format(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	t.Run("Long Form Without Relative", func(t *testing.T) {
		f := &dates.Formatter{Now: fixedClock(now)}
		assert.Equal(t, "January 1, 2025", f.Format("2025-01-01", false))
	})

	t.Run("Long Form Ignores Host Timezone", func(t *testing.T) {
		prev := time.Local
		time.Local = time.FixedZone("UTC-10", -10*60*60)
		defer func() { time.Local = prev }()

		f := &dates.Formatter{Now: fixedClock(now)}
		assert.Equal(t, "January 1, 2025", f.Format("2025-01-01", false))
	})

	t.Run("Invalid Date Returns Placeholder And Logs", func(t *testing.T) {
		var buf bytes.Buffer
		f := &dates.Formatter{
			Now:    fixedClock(now),
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}

		assert.Equal(t, dates.Placeholder, f.Format("not-a-date", true))
		assert.Contains(t, buf.String(), "not-a-date")

		for _, in := range []string{"12:", "1/", "Mon Jan  2"} {
			assert.Equal(t, dates.Placeholder, f.Format(in, true), "input %q", in)
		}
	})

	t.Run("Exactly One Year Is Singular", func(t *testing.T) {
		f := &dates.Formatter{Now: fixedClock(now)}
		assert.Equal(t, "October 18, 2025 (1 year ago)", f.Format("2025-10-18", true))
	})

	t.Run("Wall Clock One Year Ago", func(t *testing.T) {
		today := time.Now().UTC()
		if today.Month() == time.February && today.Day() == 29 {
			t.Skip("leap day has no anniversary")
		}
		target := today.AddDate(-1, 0, 0)
		got := dates.FormatDisplayDate(target.Format(time.DateOnly), true)
		assert.Equal(t, target.Format(dates.LongLayout)+" (1 year ago)", got)
	})
}

func TestRelative(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"Same Day", time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC), "Today"},
		{"Future", time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), "Today"},
		{"One Day", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), "1 day ago"},
		{"Several Days", time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), "15 days ago"},
		{"Days Across Month Boundary", time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC), "23 days ago"},
		{"One Month", time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC), "1 month ago"},
		{"Month Borrow From Days", time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), "2 months ago"},
		{"Year Borrow From Months", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), "11 months ago"},
		{"Year Borrow From Days", time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), "11 months ago"},
		{"Several Years", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "6 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.Relative(tt.target, now))
		})
	}
}
