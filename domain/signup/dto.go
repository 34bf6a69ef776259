package signup

import (
	"strings"
	"time"

	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
	"github.com/akeren/sunday-signup/pkg/phone"
)

// Required-ness is checked by ValidateStep so callers get the first missing
// field in form order; binding tags only bound sizes and enumerations.
type SignupRequest struct {
	Names         string   `json:"names" binding:"omitempty,max=255"`
	Phone         string   `json:"phone" binding:"omitempty,max=32"`
	Email         string   `json:"email" binding:"omitempty,max=255"`
	TimeSlots     []string `json:"time_slots" binding:"omitempty,max=8,dive,max=64"`
	PaymentMethod string   `json:"payment_method" binding:"omitempty,oneof=cashapp venmo zelle paypal inperson"`
	VIPChoice     string   `json:"vip_choice" binding:"omitempty,max=128"`
	HomeCourt     string   `json:"home_court" binding:"omitempty,max=255"`
	SkillLevel    string   `json:"skill_level" binding:"omitempty,max=64"`
	BestDays      []string `json:"best_days" binding:"omitempty,max=7,dive,max=32"`
	BestTimes     []string `json:"best_times" binding:"omitempty,max=8,dive,max=64"`
	GameDate      string   `json:"game_date" binding:"omitempty,datetime=2006-01-02"`
	PlayerCount   int      `json:"player_count" binding:"omitempty,min=1,max=20"`
}

type QuoteRequest struct {
	TimeSlots   []string `json:"time_slots" binding:"omitempty,max=8,dive,max=64"`
	PlayerCount int      `json:"player_count" binding:"omitempty,min=1,max=20"`
}

type QuoteResponse struct {
	Mode        string `json:"mode"`
	Units       int    `json:"units"`
	UnitCents   int64  `json:"unit_cents"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type ListSignupsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending submitted failed test_mode"`
}

type SignupResponse struct {
	ID            uint     `json:"id"`
	Reference     string   `json:"reference"`
	Names         string   `json:"names"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	TimeSlots     []string `json:"time_slots"`
	PaymentMethod string   `json:"payment_method"`
	VIP           bool     `json:"vip"`
	VIPChoice     string   `json:"vip_choice"`
	HomeCourt     string   `json:"home_court,omitempty"`
	SkillLevel    string   `json:"skill_level,omitempty"`
	BestDays      []string `json:"best_days,omitempty"`
	BestTimes     []string `json:"best_times,omitempty"`
	GameDate      string   `json:"game_date,omitempty"`
	PlayerCount   int      `json:"player_count"`
	Amount        string   `json:"amount"`
	Status        string   `json:"status"`
	LastError     string   `json:"last_error,omitempty"`
	SubmittedAt   string   `json:"submitted_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

type ConfirmationDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Confirmation struct {
	Reference string               `json:"reference"`
	VIP       bool                 `json:"vip"`
	Message   string               `json:"message"`
	Details   []ConfirmationDetail `json:"details"`
	Note      string               `json:"note,omitempty"`
	Amount    string               `json:"amount"`
	TestMode  bool                 `json:"test_mode"`
}

// ========================================
// Mappers
// ========================================

const listSeparator = ", "

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalize trims every field and, for Sunday-only signups, clears the VIP
// preferences so they are never stored or forwarded.
func normalize(req *SignupRequest) *SignupRequest {
	n := &SignupRequest{
		Names:         strings.TrimSpace(req.Names),
		Phone:         phone.Digits(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		TimeSlots:     cleanList(req.TimeSlots),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		VIPChoice:     strings.TrimSpace(req.VIPChoice),
		GameDate:      strings.TrimSpace(req.GameDate),
		PlayerCount:   req.PlayerCount,
	}
	if n.PlayerCount <= 0 {
		n.PlayerCount = 1
	}

	if IsVIPChoice(n.VIPChoice) {
		n.HomeCourt = strings.TrimSpace(req.HomeCourt)
		n.SkillLevel = strings.TrimSpace(req.SkillLevel)
		n.BestDays = cleanList(req.BestDays)
		n.BestTimes = cleanList(req.BestTimes)
	}

	return n
}

func ToSignupModel(req *SignupRequest, amountCents int64) *models.Signup {
	if req == nil {
		return nil
	}
	return &models.Signup{
		Names:         req.Names,
		Phone:         req.Phone,
		Email:         req.Email,
		TimeSlots:     joinList(req.TimeSlots),
		PaymentMethod: req.PaymentMethod,
		VIP:           IsVIPChoice(req.VIPChoice),
		VIPChoice:     req.VIPChoice,
		HomeCourt:     req.HomeCourt,
		SkillLevel:    req.SkillLevel,
		BestDays:      joinList(req.BestDays),
		BestTimes:     joinList(req.BestTimes),
		GameDate:      req.GameDate,
		PlayerCount:   req.PlayerCount,
		AmountCents:   amountCents,
		Status:        models.SignupStatusPending,
	}
}

func ToSignupResponse(s *models.Signup) SignupResponse {
	if s == nil {
		return SignupResponse{}
	}
	resp := SignupResponse{
		ID:            s.ID,
		Reference:     s.Reference,
		Names:         s.Names,
		Phone:         phone.Format(s.Phone),
		Email:         s.Email,
		TimeSlots:     splitList(s.TimeSlots),
		PaymentMethod: s.PaymentMethod,
		VIP:           s.VIP,
		VIPChoice:     s.VIPChoice,
		HomeCourt:     s.HomeCourt,
		SkillLevel:    s.SkillLevel,
		BestDays:      splitList(s.BestDays),
		BestTimes:     splitList(s.BestTimes),
		GameDate:      s.GameDate,
		PlayerCount:   s.PlayerCount,
		Amount:        FormatAmount(s.AmountCents),
		Status:        s.Status,
		LastError:     s.LastError,
		CreatedAt:     s.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
	if s.SubmittedAt != nil {
		resp.SubmittedAt = s.SubmittedAt.Format(constants.RFC3339DateTimeFormat)
	}
	return resp
}

// ToRecord flattens a stored signup into the row appended to the sheet.
func ToRecord(s *models.Signup, now time.Time) sheets.Record {
	record := sheets.Record{
		Timestamp:     now.UTC().Format(time.RFC3339),
		Reference:     s.Reference,
		Names:         s.Names,
		Phone:         phone.Format(s.Phone),
		Email:         s.Email,
		TimeSlots:     s.TimeSlots,
		PaymentMethod: s.PaymentMethod,
		VIPChoice:     s.VIPChoice,
		GameDate:      s.GameDate,
		PlayerCount:   s.PlayerCount,
		Amount:        FormatAmount(s.AmountCents),
	}
	if record.VIPChoice == "" {
		record.VIPChoice = vipChoiceLabel(s.VIP)
	}
	if s.VIP {
		record.HomeCourt = s.HomeCourt
		record.SkillLevel = s.SkillLevel
		record.BestDays = s.BestDays
		record.BestTimes = s.BestTimes
	}
	return record
}

type StepValidationResponse struct {
	Step  int  `json:"step"`
	Valid bool `json:"valid"`
}
