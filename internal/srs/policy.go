package srs

import (
	"time"

	"github.com/educreate/educreate-backend/internal/types"
)

// Policy fixes the spacing schedule and memory-strength arithmetic for
// word review. The zero value is not usable; construct with NewPolicy.
type Policy struct {
	// Review intervals in days, indexed by repetition_count-1 and
	// capped at the last entry.
	Intervals []time.Duration

	MinStrength      float64
	MaxStrength      float64
	InitialStrength  float64
	CorrectIncrement float64
	WrongDecrement   float64
}

func NewPolicy() *Policy {
	day := 24 * time.Hour
	return &Policy{
		Intervals:        []time.Duration{1 * day, 3 * day, 7 * day, 14 * day, 30 * day},
		MinStrength:      0,
		MaxStrength:      100,
		InitialStrength:  20,
		CorrectIncrement: 10,
		WrongDecrement:   15,
	}
}

// ShortestInterval is the reset interval after an incorrect answer and
// the first interval after initial exposure.
func (p *Policy) ShortestInterval() time.Duration {
	return p.Intervals[0]
}

// IntervalFor returns the review interval after the given number of
// repetitions. Repetitions beyond the schedule stay at the longest
// interval.
func (p *Policy) IntervalFor(repetitionCount int) time.Duration {
	if repetitionCount < 1 {
		return p.Intervals[0]
	}
	idx := repetitionCount - 1
	if idx >= len(p.Intervals) {
		idx = len(p.Intervals) - 1
	}
	return p.Intervals[idx]
}

func (p *Policy) clamp(strength float64) float64 {
	if strength < p.MinStrength {
		return p.MinStrength
	}
	if strength > p.MaxStrength {
		return p.MaxStrength
	}
	return strength
}

// FirstExposure seeds progress state for a word the user has never
// reviewed.
func (p *Policy) FirstExposure(progress *types.UserWordProgress, now time.Time) {
	progress.RepetitionCount = 1
	progress.MemoryStrength = p.InitialStrength
	progress.LastReviewedAt = &now
	due := now.Add(p.ShortestInterval())
	progress.NextDueAt = &due
}

// Apply updates existing progress state for one review outcome. A
// correct answer strengthens memory and lengthens the interval; an
// incorrect one weakens memory and forces near-term re-review.
func (p *Policy) Apply(progress *types.UserWordProgress, wasCorrect bool, now time.Time) {
	progress.RepetitionCount++
	progress.LastReviewedAt = &now

	var due time.Time
	if wasCorrect {
		progress.MemoryStrength = p.clamp(progress.MemoryStrength + p.CorrectIncrement)
		due = now.Add(p.IntervalFor(progress.RepetitionCount))
	} else {
		progress.MemoryStrength = p.clamp(progress.MemoryStrength - p.WrongDecrement)
		due = now.Add(p.ShortestInterval())
	}
	progress.NextDueAt = &due
}
