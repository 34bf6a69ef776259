package signup

import (
	"context"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/notify"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
)

// SheetsGateway forwards signup rows to the spreadsheet endpoint.
type SheetsGateway interface {
	Submit(ctx context.Context, record sheets.Record) (*sheets.SubmitResult, error)
}

type SignupService interface {
	// ValidateStep checks a single form step without saving anything.
	ValidateStep(ctx context.Context, step int, req *SignupRequest) error

	// Submit validates, prices, stores and forwards a signup.
	Submit(ctx context.Context, req *SignupRequest) (*Confirmation, error)

	// FindByID retrieves a stored signup.
	FindByID(ctx context.Context, id uint) (*SignupResponse, error)

	// List returns stored signups, optionally filtered by status.
	List(ctx context.Context, status string) ([]SignupResponse, error)

	// Resubmit forwards a signup that previously failed to reach the sheet.
	Resubmit(ctx context.Context, id uint) (*Confirmation, error)

	// Quote prices a selection without submitting it.
	Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error)

	// PaymentMethods lists the accepted payment options.
	PaymentMethods() []PaymentMethod
}

type ServiceConfig struct {
	Pricing        Pricing
	PaymentMethods []PaymentMethod
	// Mailer is optional; confirmations are not emailed when nil.
	Mailer notify.EmailSender
	// Metrics is optional.
	Metrics *Metrics
	// Location decides which calendar day counts as today for game dates.
	Location *time.Location
	Now      func() time.Time
}

type signupService struct {
	logger     *log.Logger
	repository SignupRepository
	gateway    SheetsGateway
	cfg        ServiceConfig
}

func NewSignupService(logger *log.Logger, repository SignupRepository, gateway SheetsGateway, cfg ServiceConfig) SignupService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.PaymentMethods == nil {
		cfg.PaymentMethods = BuildPaymentMethods(nil)
	}
	return &signupService{logger: logger, repository: repository, gateway: gateway, cfg: cfg}
}

func (s *signupService) ValidateStep(ctx context.Context, step int, req *SignupRequest) error {
	err := ValidateStep(step, req)
	if err != nil {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Info("Signup step rejected", "step", step, "reason", err.Error())
	}
	return err
}

func (s *signupService) Submit(ctx context.Context, req *SignupRequest) (*Confirmation, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Submit received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	for _, step := range []int{StepContact, StepVIP} {
		if err := ValidateStep(step, req); err != nil {
			logger.Info("Signup rejected", "step", step, "reason", err.Error())
			s.cfg.Metrics.observe(outcomeInvalid)
			return nil, err
		}
	}

	normalized := normalize(req)
	if err := s.validateGameDate(normalized.GameDate); err != nil {
		s.cfg.Metrics.observe(outcomeInvalid)
		return nil, err
	}

	amount, _ := s.cfg.Pricing.Quote(len(normalized.TimeSlots), normalized.PlayerCount)

	signup, err := s.repository.Create(ctx, ToSignupModel(normalized, amount))
	if err != nil {
		logger.Error("Failed to save signup", "error", err)
		return nil, err
	}

	logger.Info("Signup saved", "reference", signup.Reference, "vip", signup.VIP, "slots", len(normalized.TimeSlots))

	return s.forward(ctx, logger, signup)
}

func (s *signupService) validateGameDate(date string) error {
	if date == "" {
		return nil
	}

	day, err := time.ParseInLocation(constants.GameDateFormat, date, s.cfg.Location)
	if err != nil {
		return apperrors.NewFieldValidationError("game_date", "Please select a valid game date")
	}

	now := s.cfg.Now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
	if day.Before(today) {
		return apperrors.NewFieldValidationError("game_date", "That game date has already passed")
	}

	return nil
}

// forward sends a stored signup to the sheet exactly once and records the
// outcome. A failed forward is left for Resubmit; it is never retried here
// because the sheet appends a row per POST.
func (s *signupService) forward(ctx context.Context, logger *log.Logger, signup *models.Signup) (*Confirmation, error) {
	now := s.cfg.Now()

	result, err := s.gateway.Submit(ctx, ToRecord(signup, now))
	if err != nil {
		logger.Error("Failed to forward signup", "reference", signup.Reference, "error", err)
		s.cfg.Metrics.observe(outcomeFailed)

		if updateErr := s.repository.UpdateStatus(ctx, signup.ID, models.SignupStatusFailed, err.Error(), nil); updateErr != nil {
			logger.Error("Failed to mark signup as failed", "reference", signup.Reference, "error", updateErr)
		}

		return nil, apperrors.NewUpstreamError(SubmissionFailedMessage, err)
	}

	testMode := result != nil && result.TestMode

	// Test-mode signups never reached the sheet, so they stay replayable.
	status, lastError, submittedAt := models.SignupStatusSubmitted, "", &now
	if testMode {
		status, lastError, submittedAt = models.SignupStatusTestMode, result.Message, nil
	}

	if err := s.repository.UpdateStatus(ctx, signup.ID, status, lastError, submittedAt); err != nil {
		// The outcome is already final upstream; report it and leave the local status stale.
		logger.Error("Failed to record signup outcome", "reference", signup.Reference, "status", status, "error", err)
	} else {
		signup.Status = status
		signup.SubmittedAt = submittedAt
		signup.LastError = lastError
	}

	confirmation := BuildConfirmation(signup, s.cfg.PaymentMethods)
	if testMode {
		confirmation.TestMode = true
		s.cfg.Metrics.observe(outcomeTestMode)
		logger.Warn("Signup accepted in test mode", "reference", signup.Reference, "message", result.Message)
	} else {
		s.cfg.Metrics.observe(outcomeSubmitted)
		logger.Info("Signup forwarded", "reference", signup.Reference)
	}

	s.sendConfirmation(ctx, logger, signup, confirmation)

	return confirmation, nil
}

func (s *signupService) sendConfirmation(ctx context.Context, logger *log.Logger, signup *models.Signup, confirmation *Confirmation) {
	if s.cfg.Mailer == nil {
		return
	}

	if err := s.cfg.Mailer.Send(ctx, ConfirmationEmail(signup, confirmation)); err != nil {
		logger.Warn("Failed to send confirmation email", "reference", signup.Reference, "error", err)
		return
	}
	logger.Info("Confirmation email sent", "reference", signup.Reference)
}

func (s *signupService) FindByID(ctx context.Context, id uint) (*SignupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("FindByID received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid signup ID", nil)
	}

	signup, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find signup", "id", id, "error", err)
		return nil, err
	}

	response := ToSignupResponse(signup)
	return &response, nil
}

func (s *signupService) List(ctx context.Context, status string) ([]SignupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	signups, err := s.repository.FindAll(ctx, status)
	if err != nil {
		logger.Error("Failed to list signups", "status", status, "error", err)
		return nil, err
	}

	responses := make([]SignupResponse, 0, len(signups))
	for _, signup := range signups {
		responses = append(responses, ToSignupResponse(signup))
	}

	return responses, nil
}

func (s *signupService) Resubmit(ctx context.Context, id uint) (*Confirmation, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("Resubmit received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid signup ID", nil)
	}

	signup, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find signup for resubmission", "id", id, "error", err)
		return nil, err
	}

	switch signup.Status {
	case models.SignupStatusFailed, models.SignupStatusTestMode:
	case models.SignupStatusSubmitted:
		return nil, apperrors.NewConflictError("signup has already been submitted", nil)
	default:
		return nil, apperrors.NewConflictError("signup is still being submitted", nil)
	}

	// The claim is the real guard: of two concurrent resubmits only one gets
	// the row back to pending and forwards it.
	if err := s.repository.ClaimForResubmit(ctx, id); err != nil {
		logger.Warn("Signup resubmission not claimed", "reference", signup.Reference, "error", err)
		return nil, err
	}

	logger.Info("Resubmitting signup", "reference", signup.Reference, "previous_status", signup.Status)
	signup.Status = models.SignupStatusPending
	return s.forward(ctx, logger, signup)
}

func (s *signupService) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	if req == nil {
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	slots := cleanList(req.TimeSlots)
	if s.cfg.Pricing.Mode == PricingPerSlot && len(slots) == 0 {
		return nil, apperrors.NewFieldValidationError("time_slots", "Please select at least one time slot")
	}

	amount, units := s.cfg.Pricing.Quote(len(slots), req.PlayerCount)

	return &QuoteResponse{
		Mode:        string(s.cfg.Pricing.Mode),
		Units:       units,
		UnitCents:   s.cfg.Pricing.UnitCents,
		AmountCents: amount,
		Amount:      FormatAmount(amount),
	}, nil
}

func (s *signupService) PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(s.cfg.PaymentMethods))
	copy(out, s.cfg.PaymentMethods)
	return out
}
