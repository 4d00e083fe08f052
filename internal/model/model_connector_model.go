package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// ModelConnector holds provider-specific settings as free-form jsonb, e.g.
// {"model": "gemini-2.5-flash", "temperature": 0.1}.
type ModelConnector struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Provider  string    `gorm:"type:varchar(50);not null" json:"provider"`
	Config    string    `gorm:"type:jsonb" json:"config"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
