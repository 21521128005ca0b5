package events

import (
	"slices"
	"testing"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows(t *testing.T) {
	testCases := []struct {
		name       string
		now        time.Time
		lowerBound time.Time
		want       int
	}{
		{
			name:       "partial month",
			now:        time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			lowerBound: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
			want:       1,
		},
		{
			name:       "exact months",
			now:        time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			lowerBound: time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC),
			want:       3,
		},
		{
			name:       "clipped oldest window",
			now:        time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			lowerBound: time.Date(2025, time.July, 1, 8, 30, 0, 0, time.UTC),
			want:       4,
		},
		{
			name:       "end of month",
			now:        time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
			lowerBound: time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC),
			want:       13,
		},
		{
			name:       "lower bound is now",
			now:        time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			lowerBound: time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			want:       1,
		},
		{
			name:       "lower bound in the future",
			now:        time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			lowerBound: time.Date(2025, time.October, 16, 0, 0, 0, 0, time.UTC),
			want:       0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			windows := slices.Collect(Windows(tt.now, tt.lowerBound))
			require.Len(t, windows, tt.want)
			if tt.want == 0 {
				return
			}

			assert.Equal(t, tt.now, windows[0].End)
			assert.Equal(t, tt.lowerBound, windows[len(windows)-1].Start)

			for i, w := range windows {
				assert.False(t, w.Start.After(w.End), "window %d: start after end", i)
				assert.False(t, w.Start.Before(monthsBefore(w.End, 1)), "window %d: wider than one month", i)
				if i > 0 {
					assert.Equal(t, windows[i-1].Start.Add(-time.Millisecond), w.End, "window %d: gap or overlap", i)
				}
			}
		})
	}
}

func TestWindows_Fallback(t *testing.T) {
	for _, now := range []time.Time{
		time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
	} {
		lowerBound := LowerBound(rachio.Device{}, now)
		assert.Equal(t, now.AddDate(-5, 0, 0).Year(), lowerBound.Year())

		windows := slices.Collect(Windows(now, lowerBound))
		assert.Len(t, windows, 60, now.String())
		assert.Equal(t, lowerBound, windows[len(windows)-1].Start)
	}
}

func TestWindows_Stop(t *testing.T) {
	now := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	var count int
	for range Windows(now, now.AddDate(-1, 0, 0)) {
		if count++; count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestLowerBound(t *testing.T) {
	now := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, created, LowerBound(rachio.Device{CreateDate: created.UnixMilli()}, now).UTC())
	assert.Equal(t, time.Date(2020, time.October, 15, 12, 0, 0, 0, time.UTC), LowerBound(rachio.Device{}, now))
}

func TestMonthsBefore(t *testing.T) {
	testCases := []struct {
		t      time.Time
		months int
		want   time.Time
	}{
		{
			t:      time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			t:      time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC),
		},
		{
			t:      time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			t:      time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			t:      time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			months: 60,
			want:   time.Date(2019, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.want, monthsBefore(tt.t, tt.months), tt.t.String())
	}
}
