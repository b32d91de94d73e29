package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Flashcard struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"type:uuid;index;not null" json:"-"`
	FrontContent   string    `gorm:"not null" json:"front_content"`
	BackContent    string    `gorm:"not null" json:"back_content"`
	CreationMethod string    `gorm:"not null" json:"creation_method"`
	GenerationID   *string   `gorm:"type:uuid;index" json:"generation_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Generation is the audit record of a single provider call. A record is
// written even when the call fails, with Error populated and TotalGenerated
// zero. The accepted counters never exceed TotalGenerated.
type Generation struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;index;not null" json:"-"`
	TotalGenerated   int       `gorm:"not null;default:0" json:"total_generated"`
	GenerationTimeMs int64     `gorm:"column:generation_time_ms;not null;default:0" json:"generation_time_ms"`
	AIModel          string    `gorm:"column:ai_model;not null" json:"ai_model"`
	Error            *string   `json:"error,omitempty"`
	AcceptedFull     int       `gorm:"not null;default:0" json:"accepted_full"`
	AcceptedEdited   int       `gorm:"not null;default:0" json:"accepted_edited"`
	CreatedAt        time.Time `json:"created_at"`
}

func (g *Generation) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
