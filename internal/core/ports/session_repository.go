package ports

import (
	"context"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// SessionRepository persists game sessions and answers ranking queries.
type SessionRepository interface {
	// CreateGameSession assigns ID and CreatedAt when empty and returns the
	// stored record.
	CreateGameSession(ctx context.Context, session *domain.GameSession) (*domain.GameSession, error)
	// ListSessionsByUser returns the user's sessions, most recent first.
	// limit <= 0 returns all of them.
	ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.GameSession, error)
	// ListTopSessions returns up to limit entries ordered by score desc,
	// createdAt asc, id asc. Rank is left unset.
	ListTopSessions(ctx context.Context, limit int) ([]domain.RankedEntry, error)
}
