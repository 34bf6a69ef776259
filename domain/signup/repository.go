package signup

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/sunday-signup/internal/models"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"gorm.io/gorm"
)

type SignupRepository interface {
	// Create persists a new signup in the pending state.
	Create(ctx context.Context, signup *models.Signup) (*models.Signup, error)
	// FindByID retrieves a signup by its ID.
	FindByID(ctx context.Context, id uint) (*models.Signup, error)
	// FindAll lists signups newest first, optionally filtered by status.
	FindAll(ctx context.Context, status string) ([]*models.Signup, error)
	// UpdateStatus records the outcome of forwarding a signup.
	UpdateStatus(ctx context.Context, id uint, status, lastError string, submittedAt *time.Time) error
	// ClaimForResubmit moves a failed or test-mode signup back to pending.
	// It returns a conflict when the signup is in any other state, so only one
	// caller can win the claim.
	ClaimForResubmit(ctx context.Context, id uint) error
	// FindLatestByPhone returns the most recent signup for a digits-only phone.
	FindLatestByPhone(ctx context.Context, phoneDigits string) (*models.Signup, error)
}

type signupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) SignupRepository {
	return &signupRepository{db: db}
}

func (r *signupRepository) Create(ctx context.Context, signup *models.Signup) (*models.Signup, error) {
	if err := r.db.WithContext(ctx).Create(signup).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("signup reference already exists", err)
		}
		return nil, apperrors.NewDatabaseError("unable to save signup", err)
	}

	return signup, nil
}

func (r *signupRepository) FindByID(ctx context.Context, id uint) (*models.Signup, error) {
	var signup models.Signup

	if err := r.db.WithContext(ctx).First(&signup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("signup not found", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch signup", err)
	}

	return &signup, nil
}

func (r *signupRepository) FindAll(ctx context.Context, status string) ([]*models.Signup, error) {
	var signups []*models.Signup

	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&signups).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch signups", err)
	}

	return signups, nil
}

func (r *signupRepository) UpdateStatus(ctx context.Context, id uint, status, lastError string, submittedAt *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Signup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"last_error":   lastError,
			"submitted_at": submittedAt,
		})

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to update signup status", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("signup not found", nil)
	}

	return nil
}

func (r *signupRepository) ClaimForResubmit(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Signup{}).
		Where("id = ? AND status IN ?", id, models.ResubmittableStatuses).
		Updates(map[string]any{
			"status":     models.SignupStatusPending,
			"last_error": "",
		})

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to claim signup for resubmission", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("signup is not awaiting resubmission", nil)
	}

	return nil
}

func (r *signupRepository) FindLatestByPhone(ctx context.Context, phoneDigits string) (*models.Signup, error) {
	var signup models.Signup

	err := r.db.WithContext(ctx).
		Where("phone = ?", phoneDigits).
		Order("created_at DESC").
		Order("id DESC").
		First(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no signup for phone", err)
		}
		return nil, apperrors.NewDatabaseError("failed to look up signup by phone", err)
	}

	return &signup, nil
}
