package events

import (
	"iter"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
)

// fallbackMonths is how far back we go for devices that don't report a creation date
const fallbackMonths = 5 * 12

// Window is a time range [Start, End], inclusive, at millisecond resolution.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows returns the windows needed to cover [lowerBound, now], newest first.
//
// Each window spans at most one calendar month. Windows are anchored on now, so the n-th window
// starts exactly n months before now. The next window ends one millisecond before the start of the
// previous one. The oldest window is clipped to lowerBound.
func Windows(now, lowerBound time.Time) iter.Seq[Window] {
	now = now.Truncate(time.Millisecond)
	lowerBound = lowerBound.Truncate(time.Millisecond)
	return func(yield func(Window) bool) {
		end := now
		for month := 1; !end.Before(lowerBound); month++ {
			start := monthsBefore(now, month)
			if start.Before(lowerBound) {
				start = lowerBound
			}
			if !yield(Window{Start: start, End: end}) {
				return
			}
			end = start.Add(-time.Millisecond)
		}
	}
}

// LowerBound returns the oldest time for which a device can have events: its creation date, if known.
// Otherwise, it returns the time five years before now.
func LowerBound(device rachio.Device, now time.Time) time.Time {
	if created, ok := device.Created(); ok {
		return created
	}
	return monthsBefore(now, fallbackMonths)
}

// monthsBefore subtracts calendar months from t. Unlike time.AddDate, the day is clamped to the
// last day of the resulting month, i.e. one month before March 31 is February 28 (or 29), not March 3.
func monthsBefore(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month-time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
