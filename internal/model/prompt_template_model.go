package model

import (
	"time"

	"github.com/google/uuid"
)

type PromptTemplate struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	CurrentVersionID *uuid.UUID      `gorm:"type:uuid" json:"current_version_id"`
	Versions         []PromptVersion `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PromptVersion is append-only: content is never rewritten after creation,
// runs reference a version id and must keep reproducing the same prompt.
type PromptVersion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID uuid.UUID `gorm:"type:uuid;index;not null" json:"template_id"`
	Number     int       `gorm:"not null" json:"number"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
