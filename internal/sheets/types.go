package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Actions understood by the spreadsheet script.
const (
	ActionNext3Sundays = "getNext3Sundays"
	ActionNextGame     = "getNextGame"
	ActionLookupPhone  = "lookupPhone"
)

// SubmitMode selects how submission responses are interpreted.
type SubmitMode string

const (
	// SubmitModeOpaque treats any HTTP response as success and never reads the
	// body, matching a browser no-cors POST.
	SubmitModeOpaque SubmitMode = "opaque"
	// SubmitModeJSON expects a {success, error} body.
	SubmitModeJSON SubmitMode = "json"
)

func ParseSubmitMode(v string) SubmitMode {
	switch SubmitMode(strings.ToLower(strings.TrimSpace(v))) {
	case SubmitModeJSON:
		return SubmitModeJSON
	default:
		return SubmitModeOpaque
	}
}

// TestModeMessage is returned for submissions made while no script URL is set.
const TestModeMessage = "Test mode - no actual submission"

var ErrNotConfigured = errors.New("sheets: script url not configured")

// Game is one selectable date card.
type Game struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Court    string `json:"court"`
}

// Player is a returning player's record as stored in the sheet.
type Player struct {
	Names      string `json:"names"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	HomeCourt  string `json:"homeCourt"`
	SkillLevel string `json:"skillLevel"`
	BestDays   string `json:"bestDays"`
	BestTimes  string `json:"bestTimes"`
	VIPChoice  string `json:"vipChoice"`
}

// IsVIPChoice reports whether a VIP choice opts into the VIP network. The
// form's opt-in options all contain a capitalised "Yes".
func IsVIPChoice(choice string) bool {
	return strings.Contains(choice, "Yes")
}

// DisplayName prefers the multi-name column and falls back to the single name.
func (p *Player) DisplayName() string {
	if strings.TrimSpace(p.Names) != "" {
		return strings.TrimSpace(p.Names)
	}
	return strings.TrimSpace(p.Name)
}

type LookupResult struct {
	Found  bool    `json:"found"`
	Player *Player `json:"player,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Record is the flat row appended to the sheet for each signup.
type Record struct {
	Timestamp     string `json:"timestamp"`
	Reference     string `json:"reference,omitempty"`
	Names         string `json:"names"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	TimeSlots     string `json:"timeSlots"`
	PaymentMethod string `json:"paymentMethod"`
	VIPChoice     string `json:"vipChoice"`
	HomeCourt     string `json:"homeCourt"`
	SkillLevel    string `json:"skillLevel"`
	BestDays      string `json:"bestDays"`
	BestTimes     string `json:"bestTimes"`
	GameDate      string `json:"gameDate,omitempty"`
	PlayerCount   int    `json:"playerCount,omitempty"`
	Amount        string `json:"amount,omitempty"`
}

type SubmitResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	TestMode bool   `json:"-"`
}

// StatusError is returned for non-2xx responses that are read.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sheets: unexpected status %d: %s", e.StatusCode, strings.ToLower(http.StatusText(e.StatusCode)))
}

// RemoteError carries the error reported by the script in a JSON body.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "sheets: submission rejected"
	}
	return "sheets: " + e.Message
}
