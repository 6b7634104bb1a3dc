package ports

import (
	"context"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// LeaderboardCache stores ranked leaderboard pages. Reports found=false on a
// miss. Invalidate drops every cached page.
type LeaderboardCache interface {
	Get(ctx context.Context, limit int) (entries []domain.RankedEntry, found bool, err error)
	Set(ctx context.Context, limit int, entries []domain.RankedEntry) error
	Invalidate(ctx context.Context) error
}
