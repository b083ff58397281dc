package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/types"
)

type GameProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.GameProgress) ([]*types.GameProgress, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*types.GameProgress, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GameProgress, error)
	CompleteIfPending(ctx context.Context, tx *gorm.DB, sessionID string, outcome *types.GameProgress, completedAt time.Time) (bool, error)
}

type gameProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameProgressRepo(db *gorm.DB, baseLog *logger.Logger) GameProgressRepo {
	return &gameProgressRepo{db: db, log: baseLog.With("repo", "GameProgressRepo")}
}

func (r *gameProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.GameProgress) ([]*types.GameProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.GameProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameProgressRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*types.GameProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sessionID == "" {
		return nil, nil
	}

	var row types.GameProgress
	err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *gameProgressRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.GameProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.GameProgress
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CompleteIfPending flips the session to its terminal state with a
// conditional update guarded on is_completed = false. The guard
// serializes concurrent completions: the loser sees zero rows affected
// and reports false.
func (r *gameProgressRepo) CompleteIfPending(ctx context.Context, tx *gorm.DB, sessionID string, outcome *types.GameProgress, completedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sessionID == "" || outcome == nil {
		return false, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.GameProgress{}).
		Where("session_id = ? AND is_completed = ?", sessionID, false).
		Updates(map[string]interface{}{
			"is_completed":       true,
			"score":              outcome.Score,
			"correct_count":      outcome.CorrectCount,
			"total_count":        outcome.TotalCount,
			"accuracy":           outcome.Accuracy,
			"time_spent_seconds": outcome.TimeSpentSeconds,
			"answers":            outcome.Answers,
			"completed_at":       completedAt,
			"updated_at":         completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
