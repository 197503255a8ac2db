package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShowtimeStatusPastToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	nineAM := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	threePM := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)

	assert.Equal(t, ShowtimePast, ShowtimeStatus(nineAM, false, now))
	assert.Equal(t, ShowtimeAvailable, ShowtimeStatus(threePM, false, now))
}

func TestShowtimeStatusBookedWinsOverDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.Equal(t, ShowtimeBooked, ShowtimeStatus(past, true, now))
	assert.Equal(t, ShowtimeBooked, ShowtimeStatus(future, true, now))
}

func TestShowtimeStatusExactNowIsPast(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	assert.Equal(t, ShowtimePast, ShowtimeStatus(now, false, now))
}

func TestBuildTimesFromWindow(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	times, err := BuildTimes(date, "09:00", "11:00", 30, nil)
	assert.NoError(t, err)
	assert.Len(t, times, 4)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local), times[0])
	assert.Equal(t, time.Date(2025, 6, 10, 10, 30, 0, 0, time.Local), times[3])
}

func TestBuildTimesExcludesClose(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	times, err := BuildTimes(date, "09:00", "10:00", 60, nil)
	assert.NoError(t, err)
	assert.Len(t, times, 1)
}

func TestBuildTimesExplicitListSorted(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	times, err := BuildTimes(date, "", "", 0, []string{"15:00", "09:00"})
	assert.NoError(t, err)
	assert.Len(t, times, 2)
	assert.True(t, times[0].Before(times[1]))
	assert.Equal(t, 9, times[0].Hour())
}

func TestBuildTimesRejectsBadInput(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	_, err := BuildTimes(date, "", "", 0, nil)
	assert.Error(t, err)

	_, err = BuildTimes(date, "11:00", "09:00", 30, nil)
	assert.Error(t, err)

	_, err = BuildTimes(date, "", "", 0, []string{"25:99"})
	assert.Error(t, err)
}
