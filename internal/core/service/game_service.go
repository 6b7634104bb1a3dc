package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
	"github.com/sirpyerre/wavegame-api/internal/metrics"
)

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100
	DefaultHistoryLimit     = 20
	MaxHistoryLimit         = 50
)

// GameService records game sessions and serves leaderboard and history reads.
type GameService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	cache    ports.LeaderboardCache // optional
	log      zerolog.Logger
}

// NewGameService wires a GameService. cache may be nil, in which case every
// leaderboard read goes to the repository.
func NewGameService(users ports.UserRepository, sessions ports.SessionRepository, cache ports.LeaderboardCache, log zerolog.Logger) *GameService {
	return &GameService{users: users, sessions: sessions, cache: cache, log: log}
}

// CreateGameSession validates and persists a session for userID. The triple is
// re-validated here since this is the last gate before storage.
func (s *GameService) CreateGameSession(ctx context.Context, userID string, score, waveReached, duration int) (*domain.GameSession, error) {
	if err := domain.ValidateSession(score, waveReached, duration); err != nil {
		reason := "range"
		if errors.Is(err, domain.ErrIntegrityViolation) {
			reason = "integrity"
		}
		metrics.SessionsRejectedTotal.WithLabelValues(reason).Inc()
		s.log.Info().
			Str("user_id", userID).
			Int("score", score).
			Int("wave_reached", waveReached).
			Str("reason", reason).
			Msg("session rejected")
		return nil, err
	}

	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.SessionsRejectedTotal.WithLabelValues("user_not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("create session: lookup user: %w", err)
	}

	created, err := s.sessions.CreateGameSession(ctx, &domain.GameSession{
		UserID:      userID,
		Score:       score,
		WaveReached: waveReached,
		Duration:    duration,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
		}
	}

	metrics.SessionsRecordedTotal.Inc()
	metrics.SessionWaveReached.Observe(float64(waveReached))
	s.log.Info().
		Str("session_id", created.ID).
		Str("user_id", userID).
		Int("score", score).
		Int("wave_reached", waveReached).
		Msg("session recorded")

	return created, nil
}

// GetLeaderboard returns the top sessions by score, earliest first among
// equal scores.
func (s *GameService) GetLeaderboard(ctx context.Context, limit int) ([]domain.RankedEntry, error) {
	limit = clampLimit(limit, DefaultLeaderboardLimit, MaxLeaderboardLimit)

	if s.cache != nil {
		entries, found, err := s.cache.Get(ctx, limit)
		switch {
		case err != nil:
			metrics.LeaderboardCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("leaderboard cache read failed, falling back to repository")
		case found:
			metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
			return entries, nil
		default:
			metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	entries, err := s.sessions.ListTopSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	entries = domain.Ranks(entries)

	if s.cache != nil {
		if err := s.cache.Set(ctx, limit, entries); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache leaderboard")
		}
	}
	return entries, nil
}

// GetUserGameHistory returns the user's most recent sessions first.
func (s *GameService) GetUserGameHistory(ctx context.Context, userID string, limit int) ([]domain.GameSession, error) {
	limit = clampLimit(limit, DefaultHistoryLimit, MaxHistoryLimit)

	history, err := s.sessions.ListSessionsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return history, nil
}

// GetUserStats aggregates every session of the user, not just the history page.
func (s *GameService) GetUserStats(ctx context.Context, userID string) (domain.UserStats, error) {
	all, err := s.sessions.ListSessionsByUser(ctx, userID, 0)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("stats: %w", err)
	}
	return domain.ComputeStats(all), nil
}

func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
