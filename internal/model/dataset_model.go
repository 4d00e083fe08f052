package model

import (
	"time"

	"github.com/google/uuid"
)

type Dataset struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description"`
	CurrentVersionID *uuid.UUID       `gorm:"type:uuid" json:"current_version_id"`
	Versions         []DatasetVersion `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DatasetVersion points at one uploaded file in object storage. Mapping is a
// jsonb object of column name -> prompt placeholder token.
type DatasetVersion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DatasetID uuid.UUID `gorm:"type:uuid;index;not null" json:"dataset_id"`
	Number    int       `gorm:"not null" json:"number"`
	ObjectKey string    `gorm:"type:varchar(512);not null" json:"object_key"`
	Filename  string    `gorm:"type:varchar(255)" json:"filename"`
	RowCount  int       `json:"row_count"`
	Mapping   string    `gorm:"type:jsonb" json:"mapping"`
	CreatedAt time.Time `json:"created_at"`
}
