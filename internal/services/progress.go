package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/repos"
	"github.com/educreate/educreate-backend/internal/srs"
	"github.com/educreate/educreate-backend/internal/types"
)

type ProgressService interface {
	// RecordOutcome applies one review outcome to the (user, word)
	// progress row. Callers completing a session pass their transaction
	// so the read-modify-write is serialized with the session update.
	RecordOutcome(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID, wasCorrect bool) (*types.UserWordProgress, error)
	ListForLevel(ctx context.Context, userID uuid.UUID, level string) ([]*types.UserWordProgress, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.UserWordProgressRepo
	wordRepo     repos.WordRepo
	policy       *srs.Policy
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.UserWordProgressRepo, wordRepo repos.WordRepo, policy *srs.Policy) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		progressRepo: progressRepo,
		wordRepo:     wordRepo,
		policy:       policy,
	}
}

func (s *progressService) RecordOutcome(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID, wasCorrect bool) (*types.UserWordProgress, error) {
	if userID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user for progress update")
	}
	if wordID == uuid.Nil {
		return nil, apperr.InvalidInput("missing word id")
	}

	words, err := s.wordRepo.GetByIDs(ctx, tx, []uuid.UUID{wordID})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	if len(words) == 0 {
		return nil, apperr.NotFound("word %s not found", wordID)
	}

	now := time.Now().UTC()

	// locked read: concurrent outcomes for the same (user, word) must
	// serialize, or the later writer would overwrite with values derived
	// from a stale strength/repetition pair
	rows, err := s.progressRepo.LockByUserAndWordIDs(ctx, tx, userID, []uuid.UUID{wordID})
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	var progress *types.UserWordProgress
	if len(rows) == 0 {
		progress = &types.UserWordProgress{
			ID:     uuid.New(),
			UserID: userID,
			WordID: wordID,
		}
		s.policy.FirstExposure(progress, now)
	} else {
		progress = rows[0]
		s.policy.Apply(progress, wasCorrect, now)
	}
	progress.UpdatedAt = now

	if err := s.progressRepo.Upsert(ctx, tx, progress); err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return progress, nil
}

func (s *progressService) ListForLevel(ctx context.Context, userID uuid.UUID, level string) ([]*types.UserWordProgress, error) {
	if userID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user for progress listing")
	}
	rows, err := s.progressRepo.ListByUserAndLevel(ctx, nil, userID, level)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}
	return rows, nil
}
