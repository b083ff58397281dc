package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/cache"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/normalization"
	"github.com/educreate/educreate-backend/internal/repos"
	"github.com/educreate/educreate-backend/internal/requestdata"
	"github.com/educreate/educreate-backend/internal/types"
)

// ReviewWord is a catalog word annotated with its review status for
// the requesting user.
type ReviewWord struct {
	*types.Word
	IsNew     bool       `json:"is_new"`
	NextDueAt *time.Time `json:"next_due_at,omitempty"`
}

type ReviewBatch struct {
	Words    []*ReviewWord `json:"words"`
	NewCount int           `json:"newCount"`
	DueCount int           `json:"dueCount"`
}

type ReviewService interface {
	SelectWordsForReview(ctx context.Context, level string, count int) (*ReviewBatch, error)
	ListCatalog(ctx context.Context, level string) ([]*types.Word, int64, error)
}

type reviewService struct {
	db           *gorm.DB
	log          *logger.Logger
	wordRepo     repos.WordRepo
	progressRepo repos.UserWordProgressRepo
	wordCache    *cache.WordCache
}

func NewReviewService(db *gorm.DB, log *logger.Logger, wordRepo repos.WordRepo, progressRepo repos.UserWordProgressRepo, wordCache *cache.WordCache) ReviewService {
	return &reviewService{
		db:           db,
		log:          log.With("service", "ReviewService"),
		wordRepo:     wordRepo,
		progressRepo: progressRepo,
		wordCache:    wordCache,
	}
}

// SelectWordsForReview partitions the level's catalog into due and new
// words for the authenticated user and returns a batch of at most
// count words: due words first, most overdue leading, then new words
// in catalog order. Pure read.
func (s *reviewService) SelectWordsForReview(ctx context.Context, level string, count int) (*ReviewBatch, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NotAuthorized("no user in request context")
	}

	level = normalization.ParseLevelString(level)
	if !types.ValidGEPTLevel(level) {
		return nil, apperr.InvalidInput("unknown gept level %q", level)
	}

	if count <= 0 {
		return &ReviewBatch{Words: []*ReviewWord{}}, nil
	}

	words, err := s.catalogForLevel(ctx, level)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	progressRows, err := s.progressRepo.ListByUserAndLevel(ctx, nil, rd.UserID, level)
	if err != nil {
		return nil, apperr.StorageUnavailable(err)
	}

	return buildReviewBatch(words, progressRows, time.Now().UTC(), count), nil
}

// ListCatalog returns a level's words plus the store's own count. The
// count comes from the database rather than the cached slice so a stale
// cache entry cannot misreport the catalog size.
func (s *reviewService) ListCatalog(ctx context.Context, level string) ([]*types.Word, int64, error) {
	level = normalization.ParseLevelString(level)
	if !types.ValidGEPTLevel(level) {
		return nil, 0, apperr.InvalidInput("unknown gept level %q", level)
	}
	words, err := s.catalogForLevel(ctx, level)
	if err != nil {
		return nil, 0, apperr.StorageUnavailable(err)
	}
	total, err := s.wordRepo.CountByLevel(ctx, nil, level)
	if err != nil {
		return nil, 0, apperr.StorageUnavailable(err)
	}
	return words, total, nil
}

func (s *reviewService) catalogForLevel(ctx context.Context, level string) ([]*types.Word, error) {
	if words, ok := s.wordCache.GetCatalog(ctx, level); ok {
		return words, nil
	}
	words, err := s.wordRepo.ListByLevel(ctx, nil, level)
	if err != nil {
		return nil, err
	}
	s.wordCache.SetCatalog(ctx, level, words)
	return words, nil
}

// buildReviewBatch is the selection core. words must already be in
// catalog order; that order is preserved for new words so repeated
// calls return the same batch.
func buildReviewBatch(words []*types.Word, progressRows []*types.UserWordProgress, now time.Time, count int) *ReviewBatch {
	progressByWord := make(map[uuid.UUID]*types.UserWordProgress, len(progressRows))
	for _, p := range progressRows {
		progressByWord[p.WordID] = p
	}

	var due []*ReviewWord
	var fresh []*ReviewWord
	for _, w := range words {
		p, seen := progressByWord[w.ID]
		if !seen {
			fresh = append(fresh, &ReviewWord{Word: w, IsNew: true})
			continue
		}
		if p.NextDueAt != nil && !p.NextDueAt.After(now) {
			due = append(due, &ReviewWord{Word: w, NextDueAt: p.NextDueAt})
		}
	}

	// most overdue first; word id breaks exact ties deterministically
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].NextDueAt.Equal(*due[j].NextDueAt) {
			return due[i].Word.ID.String() < due[j].Word.ID.String()
		}
		return due[i].NextDueAt.Before(*due[j].NextDueAt)
	})

	batch := &ReviewBatch{Words: []*ReviewWord{}}
	for _, rw := range due {
		if len(batch.Words) == count {
			break
		}
		batch.Words = append(batch.Words, rw)
		batch.DueCount++
	}
	for _, rw := range fresh {
		if len(batch.Words) == count {
			break
		}
		batch.Words = append(batch.Words, rw)
		batch.NewCount++
	}
	return batch
}
