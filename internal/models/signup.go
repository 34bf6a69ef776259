package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Signup forwarding states
const (
	SignupStatusPending   = "pending"
	SignupStatusSubmitted = "submitted"
	SignupStatusFailed    = "failed"
	// SignupStatusTestMode marks signups accepted while no script URL was
	// configured; nothing reached the sheet.
	SignupStatusTestMode = "test_mode"
)

// ResubmittableStatuses are the states a signup may be forwarded again from.
var ResubmittableStatuses = []string{SignupStatusFailed, SignupStatusTestMode}

type Signup struct {
	gorm.Model
	Reference     string `gorm:"type:text;not null;uniqueIndex"`
	Names         string `gorm:"not null"`
	Phone         string `gorm:"not null;index"`
	Email         string `gorm:"not null"`
	TimeSlots     string `gorm:"not null"`
	PaymentMethod string `gorm:"not null"`
	VIP           bool   `gorm:"not null;default:false"`
	VIPChoice     string
	HomeCourt     string
	SkillLevel    string
	BestDays      string
	BestTimes     string
	GameDate      string
	PlayerCount   int    `gorm:"not null;default:1"`
	AmountCents   int64  `gorm:"not null;default:0"`
	Status        string `gorm:"not null;default:pending;index"`
	LastError     string
	SubmittedAt   *time.Time
}

func (s *Signup) BeforeCreate(tx *gorm.DB) error {
	if s.Reference == "" {
		s.Reference = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = SignupStatusPending
	}
	return nil
}
