package model

import (
	"time"

	"github.com/google/uuid"
)

// EvalParameter is a categorical judgment axis, e.g. "Correctness" with
// labels ["Correct", "Partially Correct", "Incorrect"]. Labels is a jsonb
// array of strings.
type EvalParameter struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Definition string    `gorm:"type:text" json:"definition"`
	Labels     string    `gorm:"type:jsonb" json:"labels"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
