package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/types"
)

type WordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Word) ([]*types.Word, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Word, error)
	ListByLevel(ctx context.Context, tx *gorm.DB, level string) ([]*types.Word, error)
	CountByLevel(ctx context.Context, tx *gorm.DB, level string) (int64, error)
}

type wordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	return &wordRepo{db: db, log: baseLog.With("repo", "WordRepo")}
}

func (r *wordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Word) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Word{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByLevel returns a level's catalog in insertion order
// (created_at ASC, id ASC). "New" word selection depends on this order
// being stable across calls.
func (r *wordRepo) ListByLevel(ctx context.Context, tx *gorm.DB, level string) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if level == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("gept_level = ?", level).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wordRepo) CountByLevel(ctx context.Context, tx *gorm.DB, level string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if level == "" {
		return 0, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Word{}).
		Where("gept_level = ?", level).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
