package games

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
)

type GamesGateway interface {
	Configured() bool
	UpcomingGames(ctx context.Context, action string) ([]sheets.Game, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type GameService interface {
	// Upcoming lists the selectable game dates.
	Upcoming(ctx context.Context) (*UpcomingGamesResponse, error)
}

type ServiceConfig struct {
	// Action is the remote action, getNext3Sundays or getNextGame.
	Action   string
	CacheTTL time.Duration

	DefaultTime     string
	DefaultLocation string
	DefaultCourt    string
	Location        *time.Location
	Now             func() time.Time
}

type gameService struct {
	logger  *log.Logger
	gateway GamesGateway
	// cache is nil when Redis is not configured.
	cache Cache
	cfg   ServiceConfig
}

func NewGameService(logger *log.Logger, gateway GamesGateway, cache Cache, cfg ServiceConfig) GameService {
	if cfg.Action == "" {
		cfg.Action = sheets.ActionNext3Sundays
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &gameService{logger: logger, gateway: gateway, cache: cache, cfg: cfg}
}

// cacheKey includes the action so switching SHEETS_GAMES_ACTION never serves
// the other action's cached list.
func (s *gameService) cacheKey() string {
	return "games:upcoming:" + s.cfg.Action
}

func (s *gameService) Upcoming(ctx context.Context) (*UpcomingGamesResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if games, ok := s.fromCache(ctx, logger); ok {
		return &UpcomingGamesResponse{Games: games, Source: SourceCache}, nil
	}

	if s.gateway == nil || !s.gateway.Configured() {
		return s.computed(), nil
	}

	remote, err := s.gateway.UpcomingGames(ctx, s.cfg.Action)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		logger.Warn("Failed to fetch upcoming games; using computed dates", "action", s.cfg.Action, "error", err)
		return s.computed(), nil
	}

	games := make([]GameResponse, 0, len(remote))
	for _, g := range remote {
		games = append(games, ToGameResponse(g, s.cfg.Location))
	}

	s.toCache(ctx, logger, games)
	return &UpcomingGamesResponse{Games: games, Source: SourceRemote}, nil
}

func (s *gameService) computed() *UpcomingGamesResponse {
	count := constants.DefaultUpcomingGames
	if s.cfg.Action == sheets.ActionNextGame {
		count = 1
	}

	sundays := NextSundays(s.cfg.Now(), s.cfg.Location, count)
	games := make([]GameResponse, 0, len(sundays))
	for _, day := range sundays {
		games = append(games, GameResponse{
			Date:     day.Format(constants.GameDateFormat),
			Label:    day.Format(labelFormat),
			Time:     s.cfg.DefaultTime,
			Location: s.cfg.DefaultLocation,
			Court:    s.cfg.DefaultCourt,
		})
	}

	return &UpcomingGamesResponse{Games: games, Source: SourceComputed}
}

func (s *gameService) fromCache(ctx context.Context, logger *log.Logger) ([]GameResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		logger.Warn("Games cache read failed", "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var games []GameResponse
	if err := json.Unmarshal([]byte(raw), &games); err != nil {
		logger.Warn("Discarding undecodable games cache entry", "error", err)
		return nil, false
	}
	return games, true
}

func (s *gameService) toCache(ctx context.Context, logger *log.Logger, games []GameResponse) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(games)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), string(payload), s.cfg.CacheTTL); err != nil {
		logger.Warn("Games cache write failed", "error", err)
	}
}
