package players

import (
	"strings"

	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/phone"
)

// Where a lookup result came from.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceLocal  = "local"
)

type LookupQuery struct {
	Phone string `form:"phone" binding:"required,max=32,phone10"`
}

// PlayerProfile is the subset of a returning player's details used to
// prefill the form.
type PlayerProfile struct {
	Names      string   `json:"names"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	HomeCourt  string   `json:"home_court,omitempty"`
	SkillLevel string   `json:"skill_level,omitempty"`
	BestDays   []string `json:"best_days,omitempty"`
	BestTimes  []string `json:"best_times,omitempty"`
	VIP        bool     `json:"vip"`
}

type LookupResponse struct {
	Found  bool           `json:"found"`
	Player *PlayerProfile `json:"player,omitempty"`
	Source string         `json:"source"`
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func FromSheetPlayer(p *sheets.Player, digits string) *PlayerProfile {
	if p == nil {
		return nil
	}
	number := phone.Digits(p.Phone)
	if number == "" {
		number = digits
	}
	return &PlayerProfile{
		Names:      p.DisplayName(),
		Phone:      phone.Format(number),
		Email:      strings.TrimSpace(p.Email),
		HomeCourt:  strings.TrimSpace(p.HomeCourt),
		SkillLevel: strings.TrimSpace(p.SkillLevel),
		BestDays:   splitList(p.BestDays),
		BestTimes:  splitList(p.BestTimes),
		VIP:        sheets.IsVIPChoice(p.VIPChoice),
	}
}

func FromSignup(s *models.Signup) *PlayerProfile {
	if s == nil {
		return nil
	}
	return &PlayerProfile{
		Names:      s.Names,
		Phone:      phone.Format(s.Phone),
		Email:      s.Email,
		HomeCourt:  s.HomeCourt,
		SkillLevel: s.SkillLevel,
		BestDays:   splitList(s.BestDays),
		BestTimes:  splitList(s.BestTimes),
		VIP:        s.VIP,
	}
}
