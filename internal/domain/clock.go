package domain

import (
	"fmt"
	"time"
)

// NextFireInstant returns the earliest instant strictly after `after` at
// which the wall clock in tz reads tod. The search walks forward one
// calendar day at a time so every occurrence is re-resolved against the
// timezone database instead of drifting by fixed 24h arithmetic:
//   - a local time skipped by a spring-forward transition resolves to the
//     normalized instant past the gap on that date;
//   - a local time repeated by a fall-back transition resolves to the
//     earlier UTC occurrence.
//
// Feeding each result back as the next call's `after` yields a strictly
// increasing sequence of daily occurrences.
func NextFireInstant(tz string, tod TimeOfDay, after time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	local := after.In(loc)
	for days := 0; days <= 2; days++ {
		y, mo, d := local.AddDate(0, 0, days).Date()
		if cand := wallClockAt(loc, y, mo, d, tod); cand.After(after) {
			return cand.UTC(), nil
		}
	}
	// Not reachable for real zones; keep the contract total anyway.
	y, mo, d := local.AddDate(0, 0, 3).Date()
	return wallClockAt(loc, y, mo, d, tod).UTC(), nil
}

// wallClockAt builds the instant whose wall clock in loc reads tod on the
// given date. When a fall-back transition repeats that wall clock,
// time.Date may return either occurrence; probe the common transition
// shifts and keep the earlier instant.
func wallClockAt(loc *time.Location, y int, mo time.Month, d int, tod TimeOfDay) time.Time {
	t := time.Date(y, mo, d, tod.Hour, tod.Minute, 0, 0, loc)
	for _, shift := range []time.Duration{time.Hour, 30 * time.Minute} {
		if s := t.Add(-shift); s.Hour() == tod.Hour && s.Minute() == tod.Minute {
			return s
		}
	}
	return t
}

// LocalClock formats t's wall clock in tz as HH:MM.
func LocalClock(t time.Time, tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return t.In(loc).Format("15:04"), nil
}
