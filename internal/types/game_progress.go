package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GameProgress tracks one practice session. A row transitions
// is_completed false -> true exactly once and is immutable afterwards.
type GameProgress struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID        string         `gorm:"uniqueIndex;not null;column:session_id" json:"session_id"`
	ActivityID       string         `gorm:"not null;index;column:activity_id" json:"activity_id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	IsCompleted      bool           `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	Score            int            `gorm:"column:score;not null;default:0" json:"score"`
	CorrectCount     int            `gorm:"column:correct_count;not null;default:0" json:"correct_count"`
	TotalCount       int            `gorm:"column:total_count;not null;default:0" json:"total_count"`
	Accuracy         float64        `gorm:"column:accuracy;not null;default:0" json:"accuracy"`
	TimeSpentSeconds int            `gorm:"column:time_spent_seconds;not null;default:0" json:"time_spent_seconds"`
	Answers          datatypes.JSON `gorm:"type:jsonb;column:answers" json:"answers,omitempty"`
	StartedAt        time.Time      `gorm:"column:started_at;not null;default:now()" json:"started_at"`
	CompletedAt      *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GameProgress) TableName() string {
	return "game_progress"
}
