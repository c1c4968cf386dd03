package services

import (
	"fmt"
	"time"
)

// daysBetween returns the number of whole days between two instants,
// order-independent.
func daysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// dateKey returns the UTC calendar date of t as YYYY-MM-DD.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// weekLabel buckets t into one of five 7-day blocks of its month, counted
// from day 1. Not an ISO week: two dates in different months never share
// a label, even when they are less than 7 days apart.
func weekLabel(t time.Time) string {
	t = t.UTC()
	week := (t.Day()-1)/7 + 1
	return fmt.Sprintf("Week %d %s %d", week, t.Format("Jan"), t.Year())
}

// orNow returns *t, or now when t is unset.
func orNow(t *time.Time, now time.Time) time.Time {
	if t != nil {
		return *t
	}
	return now
}
