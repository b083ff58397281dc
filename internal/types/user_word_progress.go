package types

import (
	"time"

	"github.com/google/uuid"
)

// UserWordProgress holds per-user, per-word learning state. Rows are
// unique per (user_id, word_id) and MemoryStrength stays within [0,100].
type UserWordProgress struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_word,unique,priority:1" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	WordID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_word,unique,priority:2" json:"word_id"`
	Word            *Word      `gorm:"constraint:OnDelete:CASCADE;foreignKey:WordID;references:ID" json:"word,omitempty"`
	MemoryStrength  float64    `gorm:"column:memory_strength;not null;default:0" json:"memory_strength"`
	RepetitionCount int        `gorm:"column:repetition_count;not null;default:0" json:"repetition_count"`
	LastReviewedAt  *time.Time `gorm:"column:last_reviewed_at" json:"last_reviewed_at,omitempty"`
	NextDueAt       *time.Time `gorm:"column:next_due_at;index" json:"next_due_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserWordProgress) TableName() string {
	return "user_word_progress"
}
