package games

import (
	"time"

	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
)

// Where the listed games came from.
const (
	SourceRemote   = "remote"
	SourceCache    = "cache"
	SourceComputed = "computed"
)

type GameResponse struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Court    string `json:"court,omitempty"`
}

type UpcomingGamesResponse struct {
	Games  []GameResponse `json:"games"`
	Source string         `json:"source"`
}

const labelFormat = "Monday, Jan 2"

// dateLabel renders "Sunday, Oct 25" for ISO dates and echoes anything else.
func dateLabel(date string, loc *time.Location) string {
	if day, err := time.ParseInLocation(constants.GameDateFormat, date, loc); err == nil {
		return day.Format(labelFormat)
	}
	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return ts.In(loc).Format(labelFormat)
	}
	return date
}

func ToGameResponse(g sheets.Game, loc *time.Location) GameResponse {
	return GameResponse{
		Date:     g.Date,
		Label:    dateLabel(g.Date, loc),
		Time:     g.Time,
		Location: g.Location,
		Court:    g.Court,
	}
}
