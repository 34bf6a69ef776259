package games

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSundays(t *testing.T) {
	wednesday := time.Date(2026, time.October, 21, 18, 30, 0, 0, time.UTC)

	got := NextSundays(wednesday, time.UTC, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "2026-10-25", got[0].Format("2006-01-02"))
	assert.Equal(t, "2026-11-01", got[1].Format("2006-01-02"))
	assert.Equal(t, "2026-11-08", got[2].Format("2006-01-02"))
	for _, d := range got {
		assert.Equal(t, time.Sunday, d.Weekday())
	}
}

func TestNextSundays_IncludesToday(t *testing.T) {
	sunday := time.Date(2026, time.October, 18, 7, 0, 0, 0, time.UTC)

	got := NextSundays(sunday, time.UTC, 1)

	require.Len(t, got, 1)
	assert.Equal(t, "2026-10-18", got[0].Format("2006-01-02"))
}

func TestNextSundays_UsesLocation(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// Monday 02:00 UTC is still Sunday evening in Los Angeles.
	mondayUTC := time.Date(2026, time.October, 19, 2, 0, 0, 0, time.UTC)

	got := NextSundays(mondayUTC, la, 1)
	assert.Equal(t, "2026-10-18", got[0].Format("2006-01-02"))
}

func TestNextSundays_NonPositiveCount(t *testing.T) {
	assert.Nil(t, NextSundays(time.Now(), time.UTC, 0))
}
