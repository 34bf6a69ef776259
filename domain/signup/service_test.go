package signup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/notify"
	"github.com/akeren/sunday-signup/internal/sheets"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingMailer struct {
	sent []notify.EmailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

var fixedNow = time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)

type serviceFixture struct {
	repo    *MockSignupRepository
	gateway *MockSheetsGateway
	mailer  *recordingMailer
	metrics *Metrics
	service SignupService
}

func newServiceFixture(t *testing.T, pricing Pricing) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		repo:    NewMockSignupRepository(ctrl),
		gateway: NewMockSheetsGateway(ctrl),
		mailer:  &recordingMailer{},
		metrics: NewMetrics(prometheus.NewRegistry()),
	}
	f.service = NewSignupService(log.NewDiscardLogger(), f.repo, f.gateway, ServiceConfig{
		Pricing:  pricing,
		Mailer:   f.mailer,
		Metrics:  f.metrics,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	return f
}

func (f *serviceFixture) count(outcome string) float64 {
	return testutil.ToFloat64(f.metrics.submissions.WithLabelValues(outcome))
}

func saveAs(id uint, reference string) func(context.Context, *models.Signup) (*models.Signup, error) {
	return func(_ context.Context, s *models.Signup) (*models.Signup, error) {
		s.ID = id
		s.Reference = reference
		return s, nil
	}
}

func TestSignupService_Submit(t *testing.T) {
	t.Run("sunday only signup is stored, forwarded and confirmed", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})

		req := validVIPRequest()
		req.VIPChoice = VIPChoiceNo
		req.TimeSlots = []string{"9:00 AM", "11:00 AM"}

		var stored *models.Signup
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, s *models.Signup) (*models.Signup, error) {
				stored = s
				return saveAs(7, "ref-7")(ctx, s)
			})

		var forwarded sheets.Record
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r sheets.Record) (*sheets.SubmitResult, error) {
				forwarded = r
				return &sheets.SubmitResult{Success: true}, nil
			})

		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(7), models.SignupStatusSubmitted, "", gomock.Any()).Return(nil)

		confirmation, err := f.service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "ref-7", confirmation.Reference)
		assert.False(t, confirmation.VIP)
		assert.False(t, confirmation.TestMode)
		assert.Equal(t, "$20.00", confirmation.Amount)
		assert.Equal(t, sundayConfirmationMessage, confirmation.Message)

		assert.Equal(t, "5551234567", stored.Phone)
		assert.Equal(t, int64(2000), stored.AmountCents)
		assert.False(t, stored.VIP)
		assert.Empty(t, stored.HomeCourt)

		assert.Equal(t, "2026-10-18T15:00:00Z", forwarded.Timestamp)
		assert.Equal(t, "(555) 123-4567", forwarded.Phone)
		assert.Equal(t, "9:00 AM, 11:00 AM", forwarded.TimeSlots)
		assert.Equal(t, VIPChoiceNo, forwarded.VIPChoice)
		assert.Empty(t, forwarded.HomeCourt)
		assert.Empty(t, forwarded.SkillLevel)
		assert.Empty(t, forwarded.BestDays)
		assert.Empty(t, forwarded.BestTimes)

		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, "jane@example.com", f.mailer.sent[0].To)
		assert.Equal(t, float64(1), f.count(outcomeSubmitted))
	})

	t.Run("vip signup forwards preferences", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerPlayer, UnitCents: 500})

		req := validVIPRequest()
		req.PlayerCount = 3

		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(saveAs(8, "ref-8"))

		var forwarded sheets.Record
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r sheets.Record) (*sheets.SubmitResult, error) {
				forwarded = r
				return &sheets.SubmitResult{Success: true}, nil
			})
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(8), models.SignupStatusSubmitted, "", gomock.Any()).Return(nil)

		confirmation, err := f.service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, confirmation.VIP)
		assert.Equal(t, vipConfirmationMessage, confirmation.Message)
		assert.Equal(t, "$15.00", confirmation.Amount)
		assert.Equal(t, "Santa Monica", forwarded.HomeCourt)
		assert.Equal(t, "Saturday, Sunday", forwarded.BestDays)
		assert.Equal(t, 3, forwarded.PlayerCount)
	})

	t.Run("test mode is reported on the confirmation", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		req := validContactRequest()
		req.VIPChoice = VIPChoiceNo

		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(saveAs(9, "ref-9"))
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(&sheets.SubmitResult{Success: true, Message: sheets.TestModeMessage, TestMode: true}, nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(9), models.SignupStatusTestMode, sheets.TestModeMessage, gomock.Nil()).Return(nil)

		confirmation, err := f.service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, confirmation.TestMode)
		assert.Equal(t, float64(1), f.count(outcomeTestMode))
	})

	t.Run("forward failure marks the signup failed and is not retried", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		req := validContactRequest()
		req.VIPChoice = VIPChoiceNo

		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(saveAs(10, "ref-10"))
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("sheets: unexpected status 500")).Times(1)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(10), models.SignupStatusFailed, "sheets: unexpected status 500", nil).Return(nil)

		confirmation, err := f.service.Submit(context.Background(), req)

		require.Error(t, err)
		assert.Nil(t, confirmation)
		assert.Equal(t, apperrors.ErrorTypeUpstream, apperrors.GetErrorType(err))
		assert.Equal(t, SubmissionFailedMessage, apperrors.GetHumanReadableMessage(err))
		assert.Empty(t, f.mailer.sent)
		assert.Equal(t, float64(1), f.count(outcomeFailed))
	})

	t.Run("invalid request never reaches the repository", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		req := validContactRequest()

		_, err := f.service.Submit(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, "vip_choice", apperrors.ValidationDetails(err)[0].Field)
		assert.Equal(t, float64(1), f.count(outcomeInvalid))
	})

	t.Run("past game date is rejected", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		req := validContactRequest()
		req.VIPChoice = VIPChoiceNo
		req.GameDate = "2026-10-11"

		_, err := f.service.Submit(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, "game_date", apperrors.ValidationDetails(err)[0].Field)
	})

	t.Run("mail failure does not fail the signup", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		f.mailer.err = errors.New("sendgrid down")
		req := validContactRequest()
		req.VIPChoice = VIPChoiceNo
		req.GameDate = "2026-10-18"

		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(saveAs(11, "ref-11"))
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&sheets.SubmitResult{Success: true}, nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(11), models.SignupStatusSubmitted, "", gomock.Any()).Return(nil)

		confirmation, err := f.service.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.NotNil(t, confirmation)
		assert.Len(t, f.mailer.sent, 1)
	})
}

func TestSignupService_Resubmit(t *testing.T) {
	t.Run("failed signup is forwarded again", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		existing := &models.Signup{
			Names: "Jane", Phone: "5551234567", Email: "jane@example.com",
			TimeSlots: "9:00 AM", PaymentMethod: "cashapp",
			Status: models.SignupStatusFailed, LastError: "boom",
		}
		existing.ID = 12
		existing.Reference = "ref-12"

		f.repo.EXPECT().FindByID(gomock.Any(), uint(12)).Return(existing, nil)
		f.repo.EXPECT().ClaimForResubmit(gomock.Any(), uint(12)).Return(nil)
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&sheets.SubmitResult{Success: true}, nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(12), models.SignupStatusSubmitted, "", gomock.Any()).Return(nil)

		confirmation, err := f.service.Resubmit(context.Background(), 12)

		require.NoError(t, err)
		assert.Equal(t, "ref-12", confirmation.Reference)
	})

	t.Run("submitted signup conflicts", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		existing := &models.Signup{Status: models.SignupStatusSubmitted}
		existing.ID = 13

		f.repo.EXPECT().FindByID(gomock.Any(), uint(13)).Return(existing, nil)

		_, err := f.service.Resubmit(context.Background(), 13)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("pending signup conflicts without forwarding", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		existing := &models.Signup{Status: models.SignupStatusPending}
		existing.ID = 14

		f.repo.EXPECT().FindByID(gomock.Any(), uint(14)).Return(existing, nil)

		_, err := f.service.Resubmit(context.Background(), 14)

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("test mode signup is forwarded once configured", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		existing := &models.Signup{
			Names: "Jane", Phone: "5551234567", Email: "jane@example.com",
			TimeSlots: "9:00 AM", PaymentMethod: "zelle",
			Status: models.SignupStatusTestMode, LastError: sheets.TestModeMessage,
		}
		existing.ID = 15

		f.repo.EXPECT().FindByID(gomock.Any(), uint(15)).Return(existing, nil)
		f.repo.EXPECT().ClaimForResubmit(gomock.Any(), uint(15)).Return(nil)
		f.gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(&sheets.SubmitResult{Success: true}, nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), uint(15), models.SignupStatusSubmitted, "", gomock.Any()).Return(nil)

		confirmation, err := f.service.Resubmit(context.Background(), 15)

		require.NoError(t, err)
		assert.False(t, confirmation.TestMode)
	})

	t.Run("lost claim is a conflict and nothing is forwarded", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
		existing := &models.Signup{Status: models.SignupStatusFailed}
		existing.ID = 16

		f.repo.EXPECT().FindByID(gomock.Any(), uint(16)).Return(existing, nil)
		f.repo.EXPECT().ClaimForResubmit(gomock.Any(), uint(16)).
			Return(apperrors.NewConflictError("signup is not awaiting resubmission", nil))

		_, err := f.service.Resubmit(context.Background(), 16)

		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("zero id is invalid", func(t *testing.T) {
		f := newServiceFixture(t, Pricing{})
		_, err := f.service.Resubmit(context.Background(), 0)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})
}

func TestSignupService_FindAndList(t *testing.T) {
	f := newServiceFixture(t, Pricing{})

	s := &models.Signup{Names: "Jane", Phone: "5551234567", TimeSlots: "9:00 AM, 11:00 AM", AmountCents: 1500, Status: models.SignupStatusPending}
	s.ID = 1
	s.CreatedAt = fixedNow

	f.repo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(s, nil)
	got, err := f.service.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", got.Phone)
	assert.Equal(t, []string{"9:00 AM", "11:00 AM"}, got.TimeSlots)
	assert.Equal(t, "$15.00", got.Amount)

	f.repo.EXPECT().FindAll(gomock.Any(), models.SignupStatusFailed).Return([]*models.Signup{s, s}, nil)
	list, err := f.service.List(context.Background(), models.SignupStatusFailed)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	f.repo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(nil, apperrors.NewNotFoundError("signup not found", nil))
	_, err = f.service.FindByID(context.Background(), 2)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestSignupService_Quote(t *testing.T) {
	perSlot := newServiceFixture(t, Pricing{Mode: PricingPerSlot, UnitCents: 1000})
	quote, err := perSlot.service.Quote(context.Background(), &QuoteRequest{TimeSlots: []string{"9:00 AM", "11:00 AM", " "}})
	require.NoError(t, err)
	assert.Equal(t, 2, quote.Units)
	assert.Equal(t, "$20.00", quote.Amount)

	_, err = perSlot.service.Quote(context.Background(), &QuoteRequest{})
	assert.Error(t, err)

	perPlayer := newServiceFixture(t, Pricing{Mode: PricingPerPlayer, UnitCents: 1200})
	quote, err = perPlayer.service.Quote(context.Background(), &QuoteRequest{PlayerCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "per_player", quote.Mode)
	assert.Equal(t, int64(2400), quote.AmountCents)
}

func TestSignupService_PaymentMethodsReturnsCopy(t *testing.T) {
	f := newServiceFixture(t, Pricing{})
	methods := f.service.PaymentMethods()
	methods[0].Handle = "mutated"

	assert.NotEqual(t, "mutated", f.service.PaymentMethods()[0].Handle)
}
