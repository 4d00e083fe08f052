package repository

import (
	"github.com/ardelias/judgeboard/internal/model"
	"gorm.io/gorm"
)

type PromptTemplateRepository struct {
	db *gorm.DB
}

func NewPromptTemplateRepository(db *gorm.DB) *PromptTemplateRepository {
	return &PromptTemplateRepository{db}
}

func (r *PromptTemplateRepository) Create(t *model.PromptTemplate) error {
	return r.db.Create(t).Error
}

func (r *PromptTemplateRepository) Update(t *model.PromptTemplate) error {
	return r.db.Save(t).Error
}

func (r *PromptTemplateRepository) Delete(id string) error {
	return r.db.Delete(&model.PromptTemplate{}, "id = ?", id).Error
}

func (r *PromptTemplateRepository) FindByID(id string) (*model.PromptTemplate, error) {
	var t model.PromptTemplate
	err := r.db.First(&t, "id = ?", id).Error
	return &t, err
}

func (r *PromptTemplateRepository) List(page, pageSize int) ([]model.PromptTemplate, int64, error) {
	var items []model.PromptTemplate
	var total int64
	if err := r.db.Model(&model.PromptTemplate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *PromptTemplateRepository) CreateVersion(v *model.PromptVersion) error {
	return r.db.Create(v).Error
}

func (r *PromptTemplateRepository) FindVersionByID(id string) (*model.PromptVersion, error) {
	var v model.PromptVersion
	err := r.db.First(&v, "id = ?", id).Error
	return &v, err
}

func (r *PromptTemplateRepository) ListVersions(templateID string) ([]model.PromptVersion, error) {
	var versions []model.PromptVersion
	err := r.db.Where("template_id = ?", templateID).Order("number ASC").Find(&versions).Error
	return versions, err
}

// NextVersionNumber returns max(number)+1 for a template, starting at 1.
func (r *PromptTemplateRepository) NextVersionNumber(templateID string) (int, error) {
	var max int
	err := r.db.Model(&model.PromptVersion{}).
		Where("template_id = ?", templateID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	return max + 1, err
}
