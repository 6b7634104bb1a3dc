package handler

import (
	"time"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
	Token   string            `json:"token"`
}

// --- Game ---

// createSessionRequest uses pointers so that a missing field is told apart
// from an explicit zero.
type createSessionRequest struct {
	Score       *int `json:"score"       validate:"required,min=0,max=1000000"`
	WaveReached *int `json:"waveReached" validate:"required,min=0,max=1000"`
	Duration    *int `json:"duration"    validate:"required,min=0,max=86400"`
}

type sessionView struct {
	ID          string    `json:"id"`
	Score       int       `json:"score"`
	WaveReached int       `json:"waveReached"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

type createSessionResponse struct {
	Message string      `json:"message"`
	Session sessionView `json:"session"`
}

type leaderboardResponse struct {
	Leaderboard []domain.RankedEntry `json:"leaderboard"`
}

type historyResponse struct {
	Stats   domain.UserStats     `json:"stats"`
	History []domain.GameSession `json:"history"`
}

func toSessionView(s *domain.GameSession) sessionView {
	return sessionView{
		ID:          s.ID,
		Score:       s.Score,
		WaveReached: s.WaveReached,
		Duration:    s.Duration,
		CreatedAt:   s.CreatedAt.UTC(),
	}
}
