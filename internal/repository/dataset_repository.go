package repository

import (
	"github.com/ardelias/judgeboard/internal/model"
	"gorm.io/gorm"
)

type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db}
}

func (r *DatasetRepository) Create(d *model.Dataset) error {
	return r.db.Create(d).Error
}

func (r *DatasetRepository) Update(d *model.Dataset) error {
	return r.db.Save(d).Error
}

func (r *DatasetRepository) Delete(id string) error {
	return r.db.Delete(&model.Dataset{}, "id = ?", id).Error
}

func (r *DatasetRepository) FindByID(id string) (*model.Dataset, error) {
	var d model.Dataset
	err := r.db.First(&d, "id = ?", id).Error
	return &d, err
}

func (r *DatasetRepository) List(page, pageSize int) ([]model.Dataset, int64, error) {
	var items []model.Dataset
	var total int64
	if err := r.db.Model(&model.Dataset{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *DatasetRepository) CreateVersion(v *model.DatasetVersion) error {
	return r.db.Create(v).Error
}

func (r *DatasetRepository) UpdateVersion(v *model.DatasetVersion) error {
	return r.db.Save(v).Error
}

func (r *DatasetRepository) FindVersionByID(id string) (*model.DatasetVersion, error) {
	var v model.DatasetVersion
	err := r.db.First(&v, "id = ?", id).Error
	return &v, err
}

func (r *DatasetRepository) ListVersions(datasetID string) ([]model.DatasetVersion, error) {
	var versions []model.DatasetVersion
	err := r.db.Where("dataset_id = ?", datasetID).Order("number ASC").Find(&versions).Error
	return versions, err
}

func (r *DatasetRepository) NextVersionNumber(datasetID string) (int, error) {
	var max int
	err := r.db.Model(&model.DatasetVersion{}).
		Where("dataset_id = ?", datasetID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	return max + 1, err
}
