package repository

import (
	"github.com/ardelias/judgeboard/internal/model"
	"gorm.io/gorm"
)

type EvalParameterRepository struct {
	db *gorm.DB
}

func NewEvalParameterRepository(db *gorm.DB) *EvalParameterRepository {
	return &EvalParameterRepository{db}
}

func (r *EvalParameterRepository) Create(p *model.EvalParameter) error {
	return r.db.Create(p).Error
}

func (r *EvalParameterRepository) Update(p *model.EvalParameter) error {
	return r.db.Save(p).Error
}

func (r *EvalParameterRepository) Delete(id string) error {
	return r.db.Delete(&model.EvalParameter{}, "id = ?", id).Error
}

func (r *EvalParameterRepository) FindByID(id string) (*model.EvalParameter, error) {
	var p model.EvalParameter
	err := r.db.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *EvalParameterRepository) FindByIDs(ids []string) ([]model.EvalParameter, error) {
	var params []model.EvalParameter
	err := r.db.Where("id IN ?", ids).Find(&params).Error
	return params, err
}

func (r *EvalParameterRepository) List(page, pageSize int) ([]model.EvalParameter, int64, error) {
	var items []model.EvalParameter
	var total int64
	if err := r.db.Model(&model.EvalParameter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}
