package ports

import (
	"context"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// GameService records sessions and answers leaderboard and history queries.
type GameService interface {
	CreateGameSession(ctx context.Context, userID string, score, waveReached, duration int) (*domain.GameSession, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.RankedEntry, error)
	GetUserGameHistory(ctx context.Context, userID string, limit int) ([]domain.GameSession, error)
	GetUserStats(ctx context.Context, userID string) (domain.UserStats, error)
}
