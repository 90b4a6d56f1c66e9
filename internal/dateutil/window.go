package dateutil

import "time"

// Window is an inclusive range of calendar dates.
type Window struct {
	First time.Time
	Last  time.Time
}

// MonthWindow covers every day of the 1-based month.
func MonthWindow(year, month int) Window {
	return Window{
		First: Date(year, month, 1),
		Last:  Date(year, month, DaysInMonth(year, month)),
	}
}

// NewWindow covers days consecutive dates starting at startKey. A malformed
// key or non-positive length yields an empty window.
func NewWindow(startKey string, days int) Window {
	start, err := TimeOf(startKey)
	if err != nil || days <= 0 {
		return Window{}
	}
	return Window{First: start, Last: start.AddDate(0, 0, days-1)}
}

// Empty reports whether the window contains no dates.
func (w Window) Empty() bool {
	return w.First.IsZero() || w.Last.Before(w.First)
}

// Dates returns the date keys of the window in chronological order.
func (w Window) Dates() []string {
	if w.Empty() {
		return nil
	}
	var keys []string
	for d := w.First; !d.After(w.Last); d = d.AddDate(0, 0, 1) {
		keys = append(keys, KeyOf(d))
	}
	return keys
}

// Contains reports whether the date named by key lies inside the window.
func (w Window) Contains(key string) bool {
	t, err := TimeOf(key)
	if err != nil || w.Empty() {
		return false
	}
	return !t.Before(w.First) && !t.After(w.Last)
}
