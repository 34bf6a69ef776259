package signup

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/sheets"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.ModelRegistry...))
	return db
}

func storeSignup(t *testing.T, repo SignupRepository, status string) *models.Signup {
	t.Helper()

	s, err := repo.Create(context.Background(), &models.Signup{
		Names: "Jane Doe", Phone: "5551234567", Email: "jane@example.com",
		TimeSlots: "9:00 AM", PaymentMethod: "venmo", VIPChoice: VIPChoiceNo,
		AmountCents: 1000, Status: status,
	})
	require.NoError(t, err)
	return s
}

// countingGateway accepts every row and counts how many it was sent.
type countingGateway struct {
	calls atomic.Int32
}

func (g *countingGateway) Submit(context.Context, sheets.Record) (*sheets.SubmitResult, error) {
	g.calls.Add(1)
	return &sheets.SubmitResult{Success: true}, nil
}

func TestSignupRepository_ClaimForResubmit(t *testing.T) {
	repo := NewSignupRepository(newTestDB(t))
	ctx := context.Background()

	for _, status := range []string{models.SignupStatusFailed, models.SignupStatusTestMode} {
		s := storeSignup(t, repo, status)
		require.NoError(t, repo.UpdateStatus(ctx, s.ID, status, "boom", nil))

		require.NoError(t, repo.ClaimForResubmit(ctx, s.ID), status)

		claimed, err := repo.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SignupStatusPending, claimed.Status)
		assert.Empty(t, claimed.LastError)

		err = repo.ClaimForResubmit(ctx, s.ID)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err), status)
	}

	for _, status := range []string{models.SignupStatusPending, models.SignupStatusSubmitted} {
		s := storeSignup(t, repo, status)
		err := repo.ClaimForResubmit(ctx, s.ID)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err), status)
	}
}

func TestSignupService_ResubmitPendingIsRefused(t *testing.T) {
	repo := NewSignupRepository(newTestDB(t))
	gateway := &countingGateway{}
	service := NewSignupService(log.NewDiscardLogger(), repo, gateway, ServiceConfig{})

	s := storeSignup(t, repo, models.SignupStatusPending)

	_, err := service.Resubmit(context.Background(), s.ID)

	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	assert.Zero(t, gateway.calls.Load())
}

func TestSignupService_ConcurrentResubmitForwardsOnce(t *testing.T) {
	repo := NewSignupRepository(newTestDB(t))
	gateway := &countingGateway{}
	service := NewSignupService(log.NewDiscardLogger(), repo, gateway, ServiceConfig{})

	s := storeSignup(t, repo, models.SignupStatusPending)
	require.NoError(t, repo.UpdateStatus(context.Background(), s.ID, models.SignupStatusFailed, "sheet is locked", nil))

	const attempts = 4
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Resubmit(context.Background(), s.ID)
			switch {
			case err == nil:
				successes.Add(1)
			case apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), conflicts.Load())
	assert.Equal(t, int32(1), gateway.calls.Load())

	stored, err := repo.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SignupStatusSubmitted, stored.Status)
}
