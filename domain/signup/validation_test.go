package signup

import (
	"testing"
	"time"

	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContactRequest() *SignupRequest {
	return &SignupRequest{
		Names:         "Jane Doe & Sam Roe",
		Phone:         "(555) 123-4567",
		Email:         "jane@example.com",
		TimeSlots:     []string{"9:00 AM"},
		PaymentMethod: "venmo",
	}
}

func validVIPRequest() *SignupRequest {
	req := validContactRequest()
	req.VIPChoice = VIPChoiceYes
	req.HomeCourt = "Santa Monica"
	req.SkillLevel = "3.5"
	req.BestDays = []string{"Saturday", "Sunday"}
	req.BestTimes = []string{"Morning"}
	return req
}

func TestValidateStep_ContactOrdering(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		field   string
		message string
	}{
		{"missing names", func(r *SignupRequest) { r.Names = "  " }, "names", "Please enter your name(s)"},
		{"missing phone", func(r *SignupRequest) { r.Phone = "" }, "phone", "Please enter your phone number"},
		{"short phone", func(r *SignupRequest) { r.Phone = "555-1234" }, "phone", "Please enter a valid phone number"},
		{"long phone", func(r *SignupRequest) { r.Phone = "1 (555) 123-4567" }, "phone", "Please enter a valid phone number"},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, "email", "Please enter your email address"},
		{"bad email", func(r *SignupRequest) { r.Email = "jane@example" }, "email", "Please enter a valid email address"},
		{"no slots", func(r *SignupRequest) { r.TimeSlots = []string{" "} }, "time_slots", "Please select at least one time slot"},
		{"no payment", func(r *SignupRequest) { r.PaymentMethod = "" }, "payment_method", "Please select a contribution method"},
		{"names reported before phone", func(r *SignupRequest) { r.Names = ""; r.Phone = "" }, "names", "Please enter your name(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validContactRequest()
			tt.mutate(req)

			err := ValidateStep(StepContact, req)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))

			details := apperrors.ValidationDetails(err)
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].Field)
			assert.Equal(t, tt.message, details[0].Message)
		})
	}

	assert.NoError(t, ValidateStep(StepContact, validContactRequest()))
}

func TestValidateStep_VIP(t *testing.T) {
	t.Run("choice required", func(t *testing.T) {
		req := validContactRequest()
		err := ValidateStep(StepVIP, req)
		require.Error(t, err)
		assert.Equal(t, "Please choose whether you want VIP access or Sunday only", apperrors.ValidationDetails(err)[0].Message)
	})

	t.Run("sunday only skips vip fields", func(t *testing.T) {
		req := validContactRequest()
		req.VIPChoice = VIPChoiceNo
		assert.NoError(t, ValidateStep(StepVIP, req))
	})

	tests := []struct {
		mutate  func(r *SignupRequest)
		message string
	}{
		{func(r *SignupRequest) { r.HomeCourt = "" }, "Please enter your home court/city"},
		{func(r *SignupRequest) { r.SkillLevel = "" }, "Please select your skill level"},
		{func(r *SignupRequest) { r.BestDays = nil }, "Please select at least one day"},
		{func(r *SignupRequest) { r.BestTimes = []string{} }, "Please select at least one time"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			req := validVIPRequest()
			tt.mutate(req)
			err := ValidateStep(StepVIP, req)
			require.Error(t, err)
			assert.Equal(t, tt.message, apperrors.ValidationDetails(err)[0].Message)
		})
	}

	assert.NoError(t, ValidateStep(StepVIP, validVIPRequest()))
}

func TestValidateStep_UnknownStep(t *testing.T) {
	err := ValidateStep(3, validContactRequest())
	require.Error(t, err)
	assert.Nil(t, apperrors.ValidationDetails(err))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.co"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, IsValidEmail("a b@c.d"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail("@b.c"))
	assert.False(t, IsValidEmail("a\vb@x.io"))
	assert.False(t, IsValidEmail("jane\u00a0doe@example.com"))
	assert.False(t, IsValidEmail("jane@ex\u2003ample.com"))
	assert.False(t, IsValidEmail("jane@example.com\ufeff"))
}

func TestIsVIPChoice(t *testing.T) {
	assert.True(t, IsVIPChoice(VIPChoiceYes))
	assert.True(t, IsVIPChoice("Yes please, add me"))
	assert.False(t, IsVIPChoice("yes please"))
	assert.False(t, IsVIPChoice("No - eyes on Sunday only"))
	assert.False(t, IsVIPChoice(VIPChoiceNo))
	assert.False(t, IsVIPChoice(""))
}

func TestValidateStep_SundayOnlyChoiceMentioningYes(t *testing.T) {
	req := validContactRequest()
	req.VIPChoice = "No - eyes on Sunday only"

	assert.NoError(t, ValidateStep(StepVIP, req))
}

func TestNormalize_ClearsVIPFieldsForSundayOnly(t *testing.T) {
	req := validVIPRequest()
	req.VIPChoice = VIPChoiceNo
	req.Names = "  Jane  "

	n := normalize(req)

	assert.Equal(t, "Jane", n.Names)
	assert.Equal(t, "5551234567", n.Phone)
	assert.Equal(t, 1, n.PlayerCount)
	assert.Empty(t, n.HomeCourt)
	assert.Empty(t, n.SkillLevel)
	assert.Empty(t, n.BestDays)
	assert.Empty(t, n.BestTimes)
}

func TestToRecord_ForwardsSubmittedVIPChoice(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	req := validVIPRequest()
	req.VIPChoice = "Yes - add me to the VIP list"
	stored := ToSignupModel(normalize(req), 1000)

	record := ToRecord(stored, now)
	assert.Equal(t, "Yes - add me to the VIP list", record.VIPChoice)
	assert.Equal(t, "Santa Monica", record.HomeCourt)

	sundayOnly := ToSignupModel(normalize(&SignupRequest{VIPChoice: "No - eyes on Sunday only", HomeCourt: "Venice"}), 1000)
	record = ToRecord(sundayOnly, now)
	assert.Equal(t, "No - eyes on Sunday only", record.VIPChoice)
	assert.False(t, sundayOnly.VIP)
	assert.Empty(t, record.HomeCourt)
}
