package repos

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/educreate/educreate-backend/internal/repos/testutil"
	"github.com/educreate/educreate-backend/internal/types"
)

func TestGameProgressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewGameProgressRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "session@example.com")
	seeded := testutil.SeedSession(t, ctx, tx, user.ID, "activity-1", "session-1")

	row, err := repo.GetBySessionID(ctx, tx, "session-1")
	if err != nil {
		t.Fatalf("GetBySessionID: %v", err)
	}
	if row == nil || row.ID != seeded.ID || row.IsCompleted {
		t.Fatalf("GetBySessionID: got %+v", row)
	}

	if row, err := repo.GetBySessionID(ctx, tx, "missing"); err != nil || row != nil {
		t.Fatalf("GetBySessionID missing: row=%v err=%v", row, err)
	}

	outcome := &types.GameProgress{
		Score:            850,
		CorrectCount:     17,
		TotalCount:       20,
		Accuracy:         85,
		TimeSpentSeconds: 120,
		Answers:          datatypes.JSON([]byte(`[]`)),
	}
	completedAt := time.Now().UTC()
	done, err := repo.CompleteIfPending(ctx, tx, "session-1", outcome, completedAt)
	if err != nil {
		t.Fatalf("CompleteIfPending: %v", err)
	}
	if !done {
		t.Fatalf("CompleteIfPending: expected first completion to win")
	}

	// second completion loses the guard and must not change aggregates
	outcome2 := &types.GameProgress{Score: 1, CorrectCount: 1, TotalCount: 1, Accuracy: 100}
	done, err = repo.CompleteIfPending(ctx, tx, "session-1", outcome2, time.Now().UTC())
	if err != nil {
		t.Fatalf("CompleteIfPending second: %v", err)
	}
	if done {
		t.Fatalf("CompleteIfPending second: expected guard to reject")
	}

	row, err = repo.GetBySessionID(ctx, tx, "session-1")
	if err != nil || row == nil {
		t.Fatalf("reload: row=%v err=%v", row, err)
	}
	if !row.IsCompleted || row.Score != 850 || row.CorrectCount != 17 {
		t.Fatalf("terminal state changed: %+v", row)
	}
	if row.CompletedAt == nil {
		t.Fatalf("expected completed_at to be stamped")
	}

	rows, err := repo.ListByUserID(ctx, tx, user.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByUserID: err=%v len=%d", err, len(rows))
	}
}
