package players

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/sheets"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/akeren/sunday-signup/pkg/phone"
)

type LookupGateway interface {
	Configured() bool
	LookupPhone(ctx context.Context, digits string) (*sheets.LookupResult, error)
}

// LocalDirectory finds players among signups stored by this service.
type LocalDirectory interface {
	FindLatestByPhone(ctx context.Context, phoneDigits string) (*models.Signup, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type PlayerService interface {
	// LookupByPhone finds a returning player for autofill.
	LookupByPhone(ctx context.Context, rawPhone string) (*LookupResponse, error)
}

type playerService struct {
	logger    *log.Logger
	gateway   LookupGateway
	directory LocalDirectory
	cache     Cache
	cacheTTL  time.Duration
}

// NewPlayerService accepts a nil cache.
func NewPlayerService(logger *log.Logger, gateway LookupGateway, directory LocalDirectory, cache Cache, cacheTTL time.Duration) PlayerService {
	return &playerService{
		logger:    logger,
		gateway:   gateway,
		directory: directory,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func lookupCacheKey(digits string) string {
	return "players:lookup:" + digits
}

func (s *playerService) LookupByPhone(ctx context.Context, rawPhone string) (*LookupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if !phone.IsValid(rawPhone) {
		return nil, apperrors.NewFieldValidationError("phone", "Please enter a valid phone number")
	}
	digits := phone.Digits(rawPhone)

	if cached, ok := s.fromCache(ctx, logger, digits); ok {
		cached.Source = SourceCache
		return cached, nil
	}

	if s.gateway != nil && s.gateway.Configured() {
		result, err := s.gateway.LookupPhone(ctx, digits)
		if err == nil {
			response := &LookupResponse{Found: result.Found, Source: SourceRemote}
			if result.Found {
				response.Player = FromSheetPlayer(result.Player, digits)
			}
			s.toCache(ctx, logger, digits, response)
			return response, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Remote player lookup failed; using local signups", "error", err)
	}

	return s.fromDirectory(ctx, digits)
}

func (s *playerService) fromDirectory(ctx context.Context, digits string) (*LookupResponse, error) {
	if s.directory == nil {
		return &LookupResponse{Found: false, Source: SourceLocal}, nil
	}

	signup, err := s.directory.FindLatestByPhone(ctx, digits)
	if err != nil {
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeNotFound {
			return &LookupResponse{Found: false, Source: SourceLocal}, nil
		}
		return nil, err
	}

	return &LookupResponse{Found: true, Player: FromSignup(signup), Source: SourceLocal}, nil
}

func (s *playerService) fromCache(ctx context.Context, logger *log.Logger, digits string) (*LookupResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, lookupCacheKey(digits))
	if err != nil {
		logger.Warn("Player lookup cache read failed", "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var response LookupResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, false
	}
	return &response, true
}

func (s *playerService) toCache(ctx context.Context, logger *log.Logger, digits string, response *LookupResponse) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, lookupCacheKey(digits), string(payload), s.cacheTTL); err != nil {
		logger.Warn("Player lookup cache write failed", "error", err)
	}
}
