package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
)

// GameHandler serves session submission, leaderboard and history routes.
// Every route expects the Auth middleware in front of it.
type GameHandler struct {
	games ports.GameService
}

func NewGameHandler(games ports.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// CreateSession handles POST /game/session.
//
// @Summary      Submit a finished game session
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSessionRequest  true  "Session result"
// @Success      201   {object}  createSessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /game/session [post]
func (h *GameHandler) CreateSession(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.games.CreateGameSession(c.Request().Context(), userID, *req.Score, *req.WaveReached, *req.Duration)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createSessionResponse{
		Message: "Game session saved successfully",
		Session: toSessionView(session),
	})
}

// Leaderboard handles GET /game/leaderboard.
//
// @Summary      Top sessions by score
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50, capped at 100)"
// @Success      200    {object}  leaderboardResponse
// @Failure      401    {object}  errorResponse
// @Router       /game/leaderboard [get]
func (h *GameHandler) Leaderboard(c echo.Context) error {
	entries, err := h.games.GetLeaderboard(c.Request().Context(), queryLimit(c))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.RankedEntry{}
	}
	return c.JSON(http.StatusOK, leaderboardResponse{Leaderboard: entries})
}

// History handles GET /game/history.
//
// @Summary      Caller's statistics and recent sessions
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum sessions (default 20, capped at 50)"
// @Success      200    {object}  historyResponse
// @Failure      401    {object}  errorResponse
// @Router       /game/history [get]
func (h *GameHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	history, err := h.games.GetUserGameHistory(ctx, userID, queryLimit(c))
	if err != nil {
		return err
	}
	stats, err := h.games.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}
	if history == nil {
		history = []domain.GameSession{}
	}

	return c.JSON(http.StatusOK, historyResponse{Stats: stats, History: history})
}
