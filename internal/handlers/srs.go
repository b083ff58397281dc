package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/services"
)

type SRSHandler struct {
	log       *logger.Logger
	reviewSvc services.ReviewService
}

func NewSRSHandler(log *logger.Logger, reviewSvc services.ReviewService) *SRSHandler {
	return &SRSHandler{
		log:       log.With("handler", "SRSHandler"),
		reviewSvc: reviewSvc,
	}
}

// GET /api/srs/words-to-review?geptLevel=ELEMENTARY&count=15
func (h *SRSHandler) WordsToReview(c *gin.Context) {
	level := c.Query("geptLevel")
	count := 15
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondAppError(c, apperr.InvalidInput("count must be an integer"))
			return
		}
		count = parsed
	}

	batch, err := h.reviewSvc.SelectWordsForReview(c.Request.Context(), level, count)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"words":    batch.Words,
		"newCount": batch.NewCount,
		"dueCount": batch.DueCount,
	})
}

// GET /api/words?geptLevel=ELEMENTARY
func (h *SRSHandler) ListWords(c *gin.Context) {
	words, total, err := h.reviewSvc.ListCatalog(c.Request.Context(), c.Query("geptLevel"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"words": words, "total": total})
}
