package games

import "time"

// NextSundays returns the next count Sundays at midnight in loc. A Sunday
// "now" is included, since the game has not necessarily started yet.
func NextSundays(now time.Time, loc *time.Location, count int) []time.Time {
	if count <= 0 {
		return nil
	}

	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	offset := (int(time.Sunday) - int(day.Weekday()) + 7) % 7
	first := day.AddDate(0, 0, offset)

	sundays := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		sundays = append(sundays, first.AddDate(0, 0, 7*i))
	}
	return sundays
}
