package types

import (
	"time"

	"github.com/google/uuid"
)

// GEPT proficiency tiers for catalog words.
const (
	GEPTElementary       = "ELEMENTARY"
	GEPTIntermediate     = "INTERMEDIATE"
	GEPTHighIntermediate = "HIGH_INTERMEDIATE"
)

func ValidGEPTLevel(level string) bool {
	switch level {
	case GEPTElementary, GEPTIntermediate, GEPTHighIntermediate:
		return true
	}
	return false
}

// Word is immutable reference data created by catalog ingestion. The
// review flow never mutates it.
type Word struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	English   string    `gorm:"not null;index;column:english" json:"english"`
	Chinese   string    `gorm:"not null;column:chinese" json:"chinese"`
	GEPTLevel string    `gorm:"not null;index;column:gept_level" json:"gept_level"`
	AudioURL  string    `gorm:"column:audio_url" json:"audio_url,omitempty"`
	ImageURL  string    `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Word) TableName() string {
	return "word"
}
