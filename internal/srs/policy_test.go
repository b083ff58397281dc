package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/educreate/educreate-backend/internal/types"
)

func TestFirstExposure(t *testing.T) {
	p := NewPolicy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := &types.UserWordProgress{UserID: uuid.New(), WordID: uuid.New()}
	p.FirstExposure(progress, now)

	if progress.RepetitionCount != 1 {
		t.Fatalf("RepetitionCount: expected 1, got %d", progress.RepetitionCount)
	}
	if progress.MemoryStrength != p.InitialStrength {
		t.Fatalf("MemoryStrength: expected %v, got %v", p.InitialStrength, progress.MemoryStrength)
	}
	if progress.LastReviewedAt == nil || !progress.LastReviewedAt.Equal(now) {
		t.Fatalf("LastReviewedAt: expected %v, got %v", now, progress.LastReviewedAt)
	}
	wantDue := now.Add(24 * time.Hour)
	if progress.NextDueAt == nil || !progress.NextDueAt.Equal(wantDue) {
		t.Fatalf("NextDueAt: expected %v, got %v", wantDue, progress.NextDueAt)
	}
}

func TestIntervalScheduleGrowsWithCorrectAnswers(t *testing.T) {
	p := NewPolicy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := &types.UserWordProgress{UserID: uuid.New(), WordID: uuid.New()}
	p.FirstExposure(progress, now)

	lastDue := *progress.NextDueAt
	for i := 0; i < 3; i++ {
		now = now.Add(time.Hour)
		p.Apply(progress, true, now)
		if !progress.NextDueAt.After(lastDue) {
			t.Fatalf("review %d: NextDueAt %v did not increase past %v", i+1, progress.NextDueAt, lastDue)
		}
		lastDue = *progress.NextDueAt
	}

	// rep counts 2,3,4 walk the 3d, 7d, 14d rungs
	wantDue := now.Add(14 * 24 * time.Hour)
	if !progress.NextDueAt.Equal(wantDue) {
		t.Fatalf("after 3 correct reviews: expected due %v, got %v", wantDue, progress.NextDueAt)
	}
}

func TestIncorrectResetsIntervalAndDropsStrength(t *testing.T) {
	p := NewPolicy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	progress := &types.UserWordProgress{
		UserID:          uuid.New(),
		WordID:          uuid.New(),
		MemoryStrength:  80,
		RepetitionCount: 5,
	}
	due := now.Add(30 * 24 * time.Hour)
	progress.NextDueAt = &due

	p.Apply(progress, false, now)

	if progress.MemoryStrength != 65 {
		t.Fatalf("MemoryStrength: expected 65, got %v", progress.MemoryStrength)
	}
	wantDue := now.Add(24 * time.Hour)
	if !progress.NextDueAt.Equal(wantDue) {
		t.Fatalf("NextDueAt: expected reset to %v, got %v", wantDue, progress.NextDueAt)
	}
	if progress.RepetitionCount != 6 {
		t.Fatalf("RepetitionCount: expected 6, got %d", progress.RepetitionCount)
	}
}

func TestStrengthStaysWithinBounds(t *testing.T) {
	p := NewPolicy()
	now := time.Now().UTC()

	progress := &types.UserWordProgress{MemoryStrength: 95, RepetitionCount: 1}
	p.Apply(progress, true, now)
	if progress.MemoryStrength != 100 {
		t.Fatalf("cap: expected 100, got %v", progress.MemoryStrength)
	}
	for i := 0; i < 10; i++ {
		before := progress.MemoryStrength
		p.Apply(progress, false, now)
		if progress.MemoryStrength > before {
			t.Fatalf("incorrect outcome raised strength: %v -> %v", before, progress.MemoryStrength)
		}
	}
	if progress.MemoryStrength != 0 {
		t.Fatalf("floor: expected 0, got %v", progress.MemoryStrength)
	}
}

func TestMonotonicPerOutcomeDirection(t *testing.T) {
	p := NewPolicy()
	now := time.Now().UTC()

	progress := &types.UserWordProgress{MemoryStrength: 50, RepetitionCount: 2}

	before := progress.MemoryStrength
	p.Apply(progress, true, now)
	if progress.MemoryStrength < before {
		t.Fatalf("correct outcome lowered strength: %v -> %v", before, progress.MemoryStrength)
	}

	before = progress.MemoryStrength
	p.Apply(progress, false, now)
	if progress.MemoryStrength > before {
		t.Fatalf("incorrect outcome raised strength: %v -> %v", before, progress.MemoryStrength)
	}
}

func TestIntervalForCapsAtLongestRung(t *testing.T) {
	p := NewPolicy()
	longest := p.Intervals[len(p.Intervals)-1]
	if got := p.IntervalFor(50); got != longest {
		t.Fatalf("IntervalFor(50): expected %v, got %v", longest, got)
	}
	if got := p.IntervalFor(0); got != p.Intervals[0] {
		t.Fatalf("IntervalFor(0): expected %v, got %v", p.Intervals[0], got)
	}
}
