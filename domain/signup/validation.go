package signup

import (
	"regexp"
	"strings"

	"github.com/akeren/sunday-signup/internal/sheets"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/akeren/sunday-signup/pkg/phone"
)

const (
	StepContact = 1
	StepVIP     = 2
)

const (
	VIPChoiceYes = "Yes - VIP"
	VIPChoiceNo  = "No - Sunday only"
)

// emailPattern rejects any Unicode space, not only the ASCII ones \s covers.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsVIPChoice(choice string) bool {
	return sheets.IsVIPChoice(choice)
}

func vipChoiceLabel(vip bool) string {
	if vip {
		return VIPChoiceYes
	}
	return VIPChoiceNo
}

// ValidateStep checks one form step and returns the first failing field as a
// field validation error.
func ValidateStep(step int, req *SignupRequest) error {
	if req == nil {
		return apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	switch step {
	case StepContact:
		return validateContactStep(req)
	case StepVIP:
		return validateVIPStep(req)
	default:
		return apperrors.NewInvalidRequestError("unknown signup step", nil)
	}
}

func validateContactStep(req *SignupRequest) error {
	p := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)

	switch {
	case strings.TrimSpace(req.Names) == "":
		return apperrors.NewFieldValidationError("names", "Please enter your name(s)")
	case p == "":
		return apperrors.NewFieldValidationError("phone", "Please enter your phone number")
	case !phone.IsValid(p):
		return apperrors.NewFieldValidationError("phone", "Please enter a valid phone number")
	case email == "":
		return apperrors.NewFieldValidationError("email", "Please enter your email address")
	case !IsValidEmail(email):
		return apperrors.NewFieldValidationError("email", "Please enter a valid email address")
	case len(cleanList(req.TimeSlots)) == 0:
		return apperrors.NewFieldValidationError("time_slots", "Please select at least one time slot")
	case strings.TrimSpace(req.PaymentMethod) == "":
		return apperrors.NewFieldValidationError("payment_method", "Please select a contribution method")
	}
	return nil
}

func validateVIPStep(req *SignupRequest) error {
	choice := strings.TrimSpace(req.VIPChoice)
	if choice == "" {
		return apperrors.NewFieldValidationError("vip_choice", "Please choose whether you want VIP access or Sunday only")
	}
	if !IsVIPChoice(choice) {
		return nil
	}

	switch {
	case strings.TrimSpace(req.HomeCourt) == "":
		return apperrors.NewFieldValidationError("home_court", "Please enter your home court/city")
	case strings.TrimSpace(req.SkillLevel) == "":
		return apperrors.NewFieldValidationError("skill_level", "Please select your skill level")
	case len(cleanList(req.BestDays)) == 0:
		return apperrors.NewFieldValidationError("best_days", "Please select at least one day")
	case len(cleanList(req.BestTimes)) == 0:
		return apperrors.NewFieldValidationError("best_times", "Please select at least one time")
	}
	return nil
}
