package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/educreate/educreate-backend/internal/repos/testutil"
	"github.com/educreate/educreate-backend/internal/types"
)

func TestUserWordProgressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserWordProgressRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "progress@example.com")
	words := testutil.SeedWords(t, ctx, tx, types.GEPTElementary, 2)
	other := testutil.SeedWords(t, ctx, tx, types.GEPTIntermediate, 1)

	now := time.Now().UTC()
	due := now.Add(24 * time.Hour)

	row := &types.UserWordProgress{
		UserID:          user.ID,
		WordID:          words[0].ID,
		MemoryStrength:  20,
		RepetitionCount: 1,
		LastReviewedAt:  &now,
		NextDueAt:       &due,
	}
	if err := repo.Upsert(ctx, tx, row); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	// second upsert for the same (user, word) overwrites, never duplicates
	laterDue := now.Add(3 * 24 * time.Hour)
	update := &types.UserWordProgress{
		UserID:          user.ID,
		WordID:          words[0].ID,
		MemoryStrength:  30,
		RepetitionCount: 2,
		LastReviewedAt:  &now,
		NextDueAt:       &laterDue,
	}
	if err := repo.Upsert(ctx, tx, update); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	rows, err := repo.GetByUserAndWordIDs(ctx, tx, user.ID, []uuid.UUID{words[0].ID})
	if err != nil {
		t.Fatalf("GetByUserAndWordIDs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row per (user, word), got %d", len(rows))
	}
	if rows[0].MemoryStrength != 30 || rows[0].RepetitionCount != 2 {
		t.Fatalf("upsert did not overwrite: strength=%v reps=%d", rows[0].MemoryStrength, rows[0].RepetitionCount)
	}

	// progress at another level is not visible through the level filter
	if err := repo.Upsert(ctx, tx, &types.UserWordProgress{
		UserID:          user.ID,
		WordID:          other[0].ID,
		MemoryStrength:  20,
		RepetitionCount: 1,
		NextDueAt:       &due,
	}); err != nil {
		t.Fatalf("Upsert other level: %v", err)
	}
	byLevel, err := repo.ListByUserAndLevel(ctx, tx, user.ID, types.GEPTElementary)
	if err != nil {
		t.Fatalf("ListByUserAndLevel: %v", err)
	}
	if len(byLevel) != 1 || byLevel[0].WordID != words[0].ID {
		t.Fatalf("ListByUserAndLevel: expected only elementary progress, got %d rows", len(byLevel))
	}

	if rows, err := repo.GetByUserAndWordIDs(ctx, tx, uuid.Nil, []uuid.UUID{words[0].ID}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByUserAndWordIDs nil user: err=%v len=%d", err, len(rows))
	}
}
