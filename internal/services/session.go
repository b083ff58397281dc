package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/repos"
	"github.com/educreate/educreate-backend/internal/requestdata"
	"github.com/educreate/educreate-backend/internal/types"
)

// WordAnswer is one per-word outcome reported with a completed session.
type WordAnswer struct {
	WordID  uuid.UUID `json:"word_id"`
	Correct bool      `json:"correct"`
}

// SessionOutcome carries the terminal aggregates for a practice
// session. Accuracy is stored verbatim from the caller; the game
// client is the source of truth for its own scoring.
type SessionOutcome struct {
	Score            int          `json:"score"`
	CorrectCount     int          `json:"correctCount"`
	TotalCount       int          `json:"totalCount"`
	Accuracy         float64      `json:"accuracy"`
	TimeSpentSeconds int          `json:"timeSpent"`
	Answers          []WordAnswer `json:"answers,omitempty"`
}

type SessionService interface {
	StartSession(ctx context.Context, activityID string) (*types.GameProgress, error)
	CompleteSession(ctx context.Context, activityID, sessionID string, outcome SessionOutcome) (*types.GameProgress, error)
	ListSessions(ctx context.Context) ([]*types.GameProgress, error)
}

type sessionService struct {
	db               *gorm.DB
	log              *logger.Logger
	gameProgressRepo repos.GameProgressRepo
	progressService  ProgressService
}

func NewSessionService(db *gorm.DB, log *logger.Logger, gameProgressRepo repos.GameProgressRepo, progressService ProgressService) SessionService {
	return &sessionService{
		db:               db,
		log:              log.With("service", "SessionService"),
		gameProgressRepo: gameProgressRepo,
		progressService:  progressService,
	}
}

func (s *sessionService) StartSession(ctx context.Context, activityID string) (*types.GameProgress, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user in request context")
	}
	if activityID == "" {
		return nil, apperr.InvalidInput("missing activityId")
	}

	row := &types.GameProgress{
		ID:         uuid.New(),
		SessionID:  uuid.New().String(),
		ActivityID: activityID,
		UserID:     rd.UserID,
		StartedAt:  time.Now().UTC(),
		Answers:    datatypes.JSON([]byte(`[]`)),
	}
	created, err := s.gameProgressRepo.Create(ctx, nil, []*types.GameProgress{row})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return created[0], nil
}

// CompleteSession marks a session terminal. Per-word progress updates
// apply before the session row flips, and everything runs in one
// transaction: a failed progress write rolls the completion back.
// Completing an already-completed session returns the stored row with
// an AlreadyCompleted error and never double-counts.
func (s *sessionService) CompleteSession(ctx context.Context, activityID, sessionID string, outcome SessionOutcome) (*types.GameProgress, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user in request context")
	}
	if activityID == "" || sessionID == "" {
		return nil, apperr.InvalidInput("activityId and sessionId are required")
	}
	if outcome.CorrectCount < 0 || outcome.TotalCount < 0 || outcome.CorrectCount > outcome.TotalCount {
		return nil, apperr.InvalidInput("correctCount/totalCount out of range")
	}

	var completed *types.GameProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := s.gameProgressRepo.GetBySessionID(ctx, tx, sessionID)
		if err != nil {
			return apperr.StorageUnavailable(err)
		}
		if session == nil {
			return apperr.NotFound("session %s not found", sessionID)
		}
		if session.UserID != rd.UserID {
			return apperr.NotAuthorized("session %s belongs to another user", sessionID)
		}
		if session.IsCompleted {
			completed = session
			return apperr.AlreadyCompleted("session %s already completed", sessionID)
		}

		for _, answer := range outcome.Answers {
			if _, err := s.progressService.RecordOutcome(ctx, tx, rd.UserID, answer.WordID, answer.Correct); err != nil {
				return err
			}
		}

		answersJSON, err := json.Marshal(outcome.Answers)
		if err != nil {
			return apperr.InvalidInput("answers not serializable: %v", err)
		}

		now := time.Now().UTC()
		terminal := &types.GameProgress{
			Score:            outcome.Score,
			CorrectCount:     outcome.CorrectCount,
			TotalCount:       outcome.TotalCount,
			Accuracy:         outcome.Accuracy,
			TimeSpentSeconds: outcome.TimeSpentSeconds,
			Answers:          datatypes.JSON(answersJSON),
		}
		won, err := s.gameProgressRepo.CompleteIfPending(ctx, tx, sessionID, terminal, now)
		if err != nil {
			return apperr.StorageUnavailable(err)
		}
		if !won {
			// lost a concurrent completion race after the initial read
			completed, err = s.gameProgressRepo.GetBySessionID(ctx, tx, sessionID)
			if err != nil {
				return apperr.StorageUnavailable(err)
			}
			return apperr.AlreadyCompleted("session %s already completed", sessionID)
		}

		completed, err = s.gameProgressRepo.GetBySessionID(ctx, tx, sessionID)
		if err != nil {
			return apperr.StorageUnavailable(err)
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAlreadyCompleted {
			return completed, err
		}
		return nil, err
	}
	return completed, nil
}

// ListSessions returns the user's practice history, most recent first.
func (s *sessionService) ListSessions(ctx context.Context) ([]*types.GameProgress, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user in request context")
	}
	rows, err := s.gameProgressRepo.ListByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return rows, nil
}
