package repository

import (
	"github.com/ardelias/judgeboard/internal/model"
	"gorm.io/gorm"
)

type EvaluationRunRepository struct {
	db *gorm.DB
}

func NewEvaluationRunRepository(db *gorm.DB) *EvaluationRunRepository {
	return &EvaluationRunRepository{db}
}

func (r *EvaluationRunRepository) Create(run *model.EvaluationRun) error {
	return r.db.Create(run).Error
}

func (r *EvaluationRunRepository) Update(run *model.EvaluationRun) error {
	return r.db.Save(run).Error
}

func (r *EvaluationRunRepository) Delete(id string) error {
	return r.db.Delete(&model.EvaluationRun{}, "id = ?", id).Error
}

func (r *EvaluationRunRepository) FindByID(id string) (*model.EvaluationRun, error) {
	var run model.EvaluationRun
	err := r.db.First(&run, "id = ?", id).Error
	return &run, err
}

func (r *EvaluationRunRepository) List(page, pageSize int) ([]model.EvaluationRun, int64, error) {
	var items []model.EvaluationRun
	var total int64
	if err := r.db.Model(&model.EvaluationRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

// UpdateProgress writes the progress percentage and the partial results
// array. Called after every executor chunk; its failure fails the run.
func (r *EvaluationRunRepository) UpdateProgress(id string, progress float64, resultsJSON string) error {
	return r.db.Model(&model.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]any{"progress": progress, "results": resultsJSON}).Error
}

func (r *EvaluationRunRepository) SetStatus(id string, status string, errorMessage string) error {
	return r.db.Model(&model.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "error_message": errorMessage}).Error
}

func (r *EvaluationRunRepository) CreateAnalysis(a *model.StoredAnalysis) error {
	return r.db.Create(a).Error
}

func (r *EvaluationRunRepository) ListAnalyses(runID string) ([]model.StoredAnalysis, error) {
	var analyses []model.StoredAnalysis
	err := r.db.Where("run_id = ?", runID).Order("created_at ASC").Find(&analyses).Error
	return analyses, err
}

func (r *EvaluationRunRepository) DeleteAnalysis(runID, analysisID string) error {
	return r.db.Delete(&model.StoredAnalysis{}, "id = ? AND run_id = ?", analysisID, runID).Error
}
