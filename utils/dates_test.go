package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	instant := time.Date(2025, 6, 10, 15, 42, 7, 123, time.Local)
	day := BeginningOfDay(instant)

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local), day)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 6, 10, 23, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 12, 1, 0, 0, 0, time.Local)

	assert.Equal(t, 2, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	evening := time.Date(2025, 6, 10, 21, 0, 0, 0, time.Local)
	nextDay := time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}
