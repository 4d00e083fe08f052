package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusPending       = "pending"
	RunStatusDataPreviewed = "data_previewed"
	RunStatusProcessing    = "processing"
	RunStatusCompleted     = "completed"
	RunStatusFailed        = "failed"
)

type EvaluationRun struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255)" json:"name"`
	DatasetVersionID uuid.UUID        `gorm:"type:uuid;not null" json:"dataset_version_id"`
	PromptVersionID  uuid.UUID        `gorm:"type:uuid;not null" json:"prompt_version_id"`
	ConnectorID      uuid.UUID        `gorm:"type:uuid;not null" json:"connector_id"`
	ParameterIDs     string           `gorm:"type:jsonb" json:"parameter_ids"`
	Status           string           `gorm:"type:varchar(50);index" json:"status"`
	Progress         float64          `gorm:"type:float" json:"progress"`
	ConcurrencyLimit int              `json:"concurrency_limit"`
	SampleSize       int              `json:"sample_size"`
	PreviewRows      string           `gorm:"type:jsonb" json:"preview_rows"`
	Results          string           `gorm:"type:jsonb" json:"results"`
	GroundTruth      string           `gorm:"type:jsonb" json:"ground_truth"`
	ErrorMessage     string           `gorm:"type:text" json:"error_message"`
	Analyses         []StoredAnalysis `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"analyses,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// StoredAnalysis is a named, saved filter over a run's result rows. Filter is
// a jsonb object of parameter name -> label.
type StoredAnalysis struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RunID     uuid.UUID `gorm:"type:uuid;index;not null" json:"run_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Filter    string    `gorm:"type:jsonb" json:"filter"`
	CreatedAt time.Time `json:"created_at"`
}

// RowResult is one slot of a run's Results array. Exactly one slot exists per
// input row, in input order. Failed rows carry Error and empty Labels.
type RowResult struct {
	RowIndex int               `json:"row_index"`
	Labels   map[string]string `json:"labels,omitempty"`
	Expected map[string]string `json:"expected,omitempty"`
	Raw      string            `json:"raw,omitempty"`
	Error    string            `json:"error,omitempty"`
}
