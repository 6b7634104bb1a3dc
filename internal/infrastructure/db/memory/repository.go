// Package memory provides in-process implementations of the user and session
// repositories. Uniqueness checks and inserts run under one lock, so the
// store gives the same guarantees as the Mongo unique indexes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
)

var (
	_ ports.UserRepository    = (*Repository)(nil)
	_ ports.SessionRepository = (*Repository)(nil)
)

// Repository stores users and sessions in memory. Safe for concurrent use.
type Repository struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	byEmail    map[string]string
	byUsername map[string]string
	sessions   []domain.GameSession
	now        func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		users:      make(map[string]*domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source used for new records.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

func (r *Repository) FindUserByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.byEmail[email]; ok {
		return cloneUser(r.users[id]), nil
	}
	if id, ok := r.byUsername[username]; ok {
		return cloneUser(r.users[id]), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *Repository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *Repository) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *Repository) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrEmailTaken
	}
	if _, taken := r.byUsername[user.Username]; taken {
		return nil, domain.ErrUsernameTaken
	}

	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}

	r.users[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	r.byUsername[stored.Username] = stored.ID
	return cloneUser(stored), nil
}

func (r *Repository) CreateGameSession(_ context.Context, session *domain.GameSession) (*domain.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.sessions = append(r.sessions, stored)

	out := stored
	return &out, nil
}

func (r *Repository) ListSessionsByUser(_ context.Context, userID string, limit int) ([]domain.GameSession, error) {
	r.mu.RLock()
	out := make([]domain.GameSession, 0)
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repository) ListTopSessions(_ context.Context, limit int) ([]domain.RankedEntry, error) {
	r.mu.RLock()
	sorted := make([]domain.GameSession, len(r.sessions))
	copy(sorted, r.sessions)
	usernames := make(map[string]string, len(r.users))
	for id, u := range r.users {
		usernames[id] = u.Username
	}
	r.mu.RUnlock()

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]domain.RankedEntry, 0, len(sorted))
	for _, s := range sorted {
		entries = append(entries, domain.RankedEntry{
			Username:    usernames[s.UserID],
			Score:       s.Score,
			WaveReached: s.WaveReached,
			Duration:    s.Duration,
			CreatedAt:   s.CreatedAt,
		})
	}
	return entries, nil
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
