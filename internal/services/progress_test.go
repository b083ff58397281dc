package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/repos"
	"github.com/educreate/educreate-backend/internal/repos/testutil"
	"github.com/educreate/educreate-backend/internal/srs"
	"github.com/educreate/educreate-backend/internal/types"
)

func TestRecordOutcomeTrajectory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	log := testutil.Logger(t)
	wordRepo := repos.NewWordRepo(db, log)
	progressRepo := repos.NewUserWordProgressRepo(db, log)
	svc := NewProgressService(db, log, progressRepo, wordRepo, srs.NewPolicy())

	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, tx, "trajectory@example.com")
	words := testutil.SeedWords(t, ctx, tx, types.GEPTElementary, 1)
	word := words[0]

	// first exposure
	p, err := svc.RecordOutcome(ctx, tx, user.ID, word.ID, true)
	if err != nil {
		t.Fatalf("first RecordOutcome: %v", err)
	}
	if p.RepetitionCount != 1 || p.MemoryStrength != 20 {
		t.Fatalf("first exposure: reps=%d strength=%v", p.RepetitionCount, p.MemoryStrength)
	}
	lastDue := *p.NextDueAt

	// three correct reviews in a row lengthen the interval each time
	for i := 0; i < 3; i++ {
		p, err = svc.RecordOutcome(ctx, tx, user.ID, word.ID, true)
		if err != nil {
			t.Fatalf("RecordOutcome correct %d: %v", i, err)
		}
		if !p.NextDueAt.After(lastDue) {
			t.Fatalf("review %d: due date did not increase (%v -> %v)", i, lastDue, p.NextDueAt)
		}
		lastDue = *p.NextDueAt
	}
	if p.MemoryStrength != 50 {
		t.Fatalf("after 3 correct: expected strength 50, got %v", p.MemoryStrength)
	}

	// an incorrect answer resets the interval and drops strength
	strengthBefore := p.MemoryStrength
	p, err = svc.RecordOutcome(ctx, tx, user.ID, word.ID, false)
	if err != nil {
		t.Fatalf("RecordOutcome incorrect: %v", err)
	}
	if p.MemoryStrength != strengthBefore-15 {
		t.Fatalf("incorrect: expected strength %v, got %v", strengthBefore-15, p.MemoryStrength)
	}
	if !p.NextDueAt.Before(lastDue) {
		t.Fatalf("incorrect: due date did not reset (%v vs %v)", p.NextDueAt, lastDue)
	}

	// unknown word is NotFound, not a silent insert
	_, err = svc.RecordOutcome(ctx, tx, user.ID, uuid.New(), true)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown word: expected NotFound, got %v", err)
	}
}

// Two sessions finishing at once can both report an outcome for the
// same word. The locked read serializes them: each increment lands on
// the other's committed row instead of a shared stale read.
func TestRecordOutcomeConcurrentWritersSerialize(t *testing.T) {
	db := testutil.DB(t)

	log := testutil.Logger(t)
	wordRepo := repos.NewWordRepo(db, log)
	progressRepo := repos.NewUserWordProgressRepo(db, log)
	svc := NewProgressService(db, log, progressRepo, wordRepo, srs.NewPolicy())

	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, db, "concurrent@example.com")
	words := testutil.SeedWords(t, ctx, db, types.GEPTElementary, 1)
	word := words[0]
	t.Cleanup(func() {
		db.Where("user_id = ?", user.ID).Delete(&types.UserWordProgress{})
		db.Where("id = ?", word.ID).Delete(&types.Word{})
		db.Where("id = ?", user.ID).Delete(&types.User{})
	})

	// seed the row so both writers hit the update path
	if _, err := svc.RecordOutcome(ctx, nil, user.ID, word.ID, true); err != nil {
		t.Fatalf("seed RecordOutcome: %v", err)
	}

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				_, err := svc.RecordOutcome(ctx, tx, user.ID, word.ID, true)
				return err
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}

	rows, err := progressRepo.GetByUserAndWordIDs(ctx, nil, user.ID, []uuid.UUID{word.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("progress lookup: err=%v len=%d", err, len(rows))
	}
	// seed rep=1 strength=20, then 4 serialized corrects
	if rows[0].RepetitionCount != 1+writers {
		t.Fatalf("lost update: expected repetition count %d, got %d", 1+writers, rows[0].RepetitionCount)
	}
	if rows[0].MemoryStrength != 20+10*writers {
		t.Fatalf("lost update: expected strength %v, got %v", 20+10*writers, rows[0].MemoryStrength)
	}
}
