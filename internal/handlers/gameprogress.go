package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/services"
)

type GameProgressHandler struct {
	log        *logger.Logger
	sessionSvc services.SessionService
}

func NewGameProgressHandler(log *logger.Logger, sessionSvc services.SessionService) *GameProgressHandler {
	return &GameProgressHandler{
		log:        log.With("handler", "GameProgressHandler"),
		sessionSvc: sessionSvc,
	}
}

// POST /api/game-progress/start
func (h *GameProgressHandler) StartSession(c *gin.Context) {
	var req struct {
		ActivityID string `json:"activityId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, apperr.InvalidInput("invalid request body"))
		return
	}
	session, err := h.sessionSvc.StartSession(c.Request.Context(), req.ActivityID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "data": session})
}

// POST /api/game-progress/complete
func (h *GameProgressHandler) CompleteSession(c *gin.Context) {
	var req struct {
		ActivityID string `json:"activityId"`
		SessionID  string `json:"sessionId"`
		services.SessionOutcome
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondAppError(c, apperr.InvalidInput("invalid request body"))
		return
	}

	completed, err := h.sessionSvc.CompleteSession(c.Request.Context(), req.ActivityID, req.SessionID, req.SessionOutcome)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAlreadyCompleted && completed != nil {
			// idempotent re-completion: surface the stored terminal row
			c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "code": string(apperr.KindAlreadyCompleted), "data": completed})
			return
		}
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "data": completed})
}

// GET /api/game-progress
func (h *GameProgressHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListSessions(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "data": sessions, "total": len(sessions)})
}
