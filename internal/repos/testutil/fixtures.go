package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		DisplayName: "tester",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedWords creates n catalog words at the given level with staggered
// created_at values so catalog order is deterministic.
func SeedWords(tb testing.TB, ctx context.Context, tx *gorm.DB, level string, n int) []*types.Word {
	tb.Helper()
	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	words := make([]*types.Word, 0, n)
	for i := 0; i < n; i++ {
		w := &types.Word{
			ID:        uuid.New(),
			English:   fmt.Sprintf("word-%s-%d", level, i),
			Chinese:   fmt.Sprintf("詞-%d", i),
			GEPTLevel: level,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := tx.WithContext(ctx).Create(w).Error; err != nil {
			tb.Fatalf("seed word %d: %v", i, err)
		}
		words = append(words, w)
	}
	return words
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID, strength float64, reps int, nextDueAt time.Time) *types.UserWordProgress {
	tb.Helper()
	lastReviewed := nextDueAt.Add(-24 * time.Hour)
	p := &types.UserWordProgress{
		ID:              uuid.New(),
		UserID:          userID,
		WordID:          wordID,
		MemoryStrength:  strength,
		RepetitionCount: reps,
		LastReviewedAt:  &lastReviewed,
		NextDueAt:       &nextDueAt,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityID, sessionID string) *types.GameProgress {
	tb.Helper()
	gp := &types.GameProgress{
		ID:         uuid.New(),
		SessionID:  sessionID,
		ActivityID: activityID,
		UserID:     userID,
		StartedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(gp).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return gp
}
