package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(base, base))
	assert.Equal(t, 0, daysBetween(base, base.Add(23*time.Hour)))
	assert.Equal(t, 1, daysBetween(base, base.Add(36*time.Hour)))
	assert.Equal(t, 2, daysBetween(base, base.Add(48*time.Hour)))

	// Order-independent
	assert.Equal(t, 1, daysBetween(base.Add(36*time.Hour), base))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-03-15", dateKey(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)))

	// Keyed by the UTC calendar date, not the local one
	moscow := time.FixedZone("MSK", 3*60*60)
	assert.Equal(t, "2025-03-14", dateKey(time.Date(2025, 3, 15, 1, 30, 0, 0, moscow)))
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "Week 1 Mar 2025", weekLabel(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week 1 Mar 2025", weekLabel(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week 2 Mar 2025", weekLabel(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week 5 Jan 2025", weekLabel(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))

	// Month boundaries always split labels, even within 7 days
	assert.NotEqual(t,
		weekLabel(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
		weekLabel(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
}
