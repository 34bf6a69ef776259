package constants

import "time"

// RFC3339DateTimeFormat is used for every timestamp sent to clients or the
// spreadsheet endpoint.
const RFC3339DateTimeFormat = time.RFC3339

// GameDateFormat is the calendar date layout used for game dates.
const GameDateFormat = "2006-01-02"

const (
	DefaultRateLimitRequests       = 100
	DefaultRateLimitWindow         = time.Minute
	DefaultSignupRequestsPerMinute = 10
)

// Signup defaults
const (
	DefaultPricePerUnitCents = 1000
	DefaultGamesCacheTTL     = 5 * time.Minute
	DefaultLookupCacheTTL    = 2 * time.Minute
	DefaultUpstreamTimeout   = 15 * time.Second
	DefaultUpcomingGames     = 3
	MaxPlayerCount           = 20
)
