package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/types"
)

type UserWordProgressRepo interface {
	GetByUserAndWordIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordIDs []uuid.UUID) ([]*types.UserWordProgress, error)
	LockByUserAndWordIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordIDs []uuid.UUID) ([]*types.UserWordProgress, error)
	ListByUserAndLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, level string) ([]*types.UserWordProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserWordProgress) error
}

type userWordProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserWordProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserWordProgressRepo {
	return &userWordProgressRepo{db: db, log: baseLog.With("repo", "UserWordProgressRepo")}
}

func (r *userWordProgressRepo) GetByUserAndWordIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordIDs []uuid.UUID) ([]*types.UserWordProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWordProgress
	if userID == uuid.Nil || len(wordIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND word_id IN ?", userID, wordIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// LockByUserAndWordIDs reads the rows FOR UPDATE. Inside a transaction
// a concurrent writer blocks on the row lock and re-reads the committed
// value afterwards, so two writers updating the same (user, word) row
// never derive their new strength and repetition count from the same
// stale read.
func (r *userWordProgressRepo) LockByUserAndWordIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wordIDs []uuid.UUID) ([]*types.UserWordProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWordProgress
	if userID == uuid.Nil || len(wordIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND word_id IN ?", userID, wordIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userWordProgressRepo) ListByUserAndLevel(ctx context.Context, tx *gorm.DB, userID uuid.UUID, level string) ([]*types.UserWordProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWordProgress
	if userID == uuid.Nil || level == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Joins("JOIN word ON word.id = user_word_progress.word_id").
		Where("user_word_progress.user_id = ? AND word.gept_level = ?", userID, level).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert inserts or overwrites the progress row keyed by the unique
// (user_id, word_id) pair.
func (r *userWordProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserWordProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil || row.UserID == uuid.Nil || row.WordID == uuid.Nil {
		return nil
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"memory_strength", "repetition_count", "last_reviewed_at", "next_due_at", "updated_at",
			}),
		}).
		Create(row).Error
}
