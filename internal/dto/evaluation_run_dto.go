package dto

import (
	"encoding/json"
	"time"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/google/uuid"
)

// EvaluationRunDTO is the polling shape: status, progress and decoded
// results, without the raw preview blob.
type EvaluationRunDTO struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	DatasetVersionID uuid.UUID         `json:"dataset_version_id"`
	PromptVersionID  uuid.UUID         `json:"prompt_version_id"`
	ConnectorID      uuid.UUID         `json:"connector_id"`
	ParameterIDs     []string          `json:"parameter_ids"`
	Status           string            `json:"status"`
	Progress         float64           `json:"progress"`
	ConcurrencyLimit int               `json:"concurrency_limit"`
	SampleSize       int               `json:"sample_size"`
	Results          []model.RowResult `json:"results"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func NewEvaluationRunDTO(run *model.EvaluationRun) EvaluationRunDTO {
	var paramIDs []string
	_ = json.Unmarshal([]byte(run.ParameterIDs), &paramIDs)
	results := []model.RowResult{}
	_ = json.Unmarshal([]byte(run.Results), &results)

	return EvaluationRunDTO{
		ID:               run.ID,
		Name:             run.Name,
		DatasetVersionID: run.DatasetVersionID,
		PromptVersionID:  run.PromptVersionID,
		ConnectorID:      run.ConnectorID,
		ParameterIDs:     paramIDs,
		Status:           run.Status,
		Progress:         run.Progress,
		ConcurrencyLimit: run.ConcurrencyLimit,
		SampleSize:       run.SampleSize,
		Results:          results,
		ErrorMessage:     run.ErrorMessage,
		CreatedAt:        run.CreatedAt,
		UpdatedAt:        run.UpdatedAt,
	}
}

func NewEvaluationRunDTOs(runs []model.EvaluationRun) []EvaluationRunDTO {
	out := make([]EvaluationRunDTO, 0, len(runs))
	for i := range runs {
		out = append(out, NewEvaluationRunDTO(&runs[i]))
	}
	return out
}
