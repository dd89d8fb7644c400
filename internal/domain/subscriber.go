package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTimezone   = errors.New("invalid timezone")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrMissingPreference = errors.New("missing preference")
)

// SubscriberID identifies one conversation. For Telegram it is the chat id.
type SubscriberID int64

// TimeOfDay is a local wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int // 0..23
	Minute int // 0..59
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Preference is a subscriber's confirmed delivery choice: the daily wall
// clock at which to send, and the timezone that wall clock is read in.
// It is replaced wholesale on re-onboarding, never mutated field by field.
type Preference struct {
	Timezone string // validated IANA identifier
	At       TimeOfDay
}

// ParseTimeOfDay parses a strict HH:MM 24-hour literal. Both fields must
// be exactly two digits: "9:00" is rejected, "09:00" is accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	h, ok := twoDigits(parts[0])
	if !ok || h > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: bad hour in %q", ErrInvalidTimeFormat, raw)
	}
	m, ok := twoDigits(parts[1])
	if !ok || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: bad minute in %q", ErrInvalidTimeFormat, raw)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// ValidateTimezone checks that tz is a member of the timezone database and
// returns its canonical name. The empty string and "Local" resolve in Go
// but are not real identifiers, so they are rejected too.
func ValidateTimezone(tz string) (string, error) {
	if tz == "" || tz == "Local" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc.String(), nil
}
