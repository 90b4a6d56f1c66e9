// Package dateutil holds the calendar arithmetic shared by the tracker and
// the UI: date keys, weekdays, month windows and display-time formatting.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateKey is returned when a string is not a valid "Y-M-D" date key.
var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey returns the canonical key for a calendar date. The month is
// 1-based and no component is zero padded ("2026-10-5").
func DateKey(year, month, day int) string {
	return fmt.Sprintf("%d-%d-%d", year, month, day)
}

// KeyOf returns the date key for the local calendar date of t.
func KeyOf(t time.Time) string {
	return DateKey(t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey is the inverse of DateKey. It accepts zero-padded components
// but rejects dates that do not exist (e.g. "2026-2-30").
func ParseDateKey(key string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
		}
		nums[i] = n
	}

	year, month, day = nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return year, month, day, nil
}

// TimeOf returns local midnight of the date named by key.
func TimeOf(key string) (time.Time, error) {
	y, m, d, err := ParseDateKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return Date(y, m, d), nil
}

// Date returns local midnight for the given 1-based year/month/day.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// WeekdayOf returns the weekday index of a date, 0 = Sunday ... 6 = Saturday.
func WeekdayOf(year, month, day int) int {
	return int(Date(year, month, day).Weekday())
}

// WeekdayOfKey is WeekdayOf for a date key. Invalid keys report -1.
func WeekdayOfKey(key string) int {
	y, m, d, err := ParseDateKey(key)
	if err != nil {
		return -1
	}
	return WeekdayOf(y, m, d)
}

// DaysInMonth returns the number of days in the 1-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays shifts a date key by n days. Invalid keys are returned unchanged.
func AddDays(key string, n int) string {
	t, err := TimeOf(key)
	if err != nil {
		return key
	}
	return KeyOf(t.AddDate(0, 0, n))
}

// Compare orders two date keys chronologically. Invalid keys sort first.
func Compare(a, b string) int {
	ta, errA := TimeOf(a)
	tb, errB := TimeOf(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return ta.Compare(tb)
}

// ValidTime reports whether s is a 24-hour "HH:MM" time of day.
func ValidTime(s string) bool {
	h, m, ok := splitTime(s)
	return ok && h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// FormatDisplayTime turns a 24-hour "HH:MM" into "H:MM AM/PM". Midnight and
// noon both display as 12. Input that is not a time is returned as is.
func FormatDisplayTime(s string) string {
	h, m, ok := splitTime(s)
	if !ok {
		return s
	}

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

func splitTime(s string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}
