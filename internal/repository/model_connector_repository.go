package repository

import (
	"github.com/ardelias/judgeboard/internal/model"
	"gorm.io/gorm"
)

type ModelConnectorRepository struct {
	db *gorm.DB
}

func NewModelConnectorRepository(db *gorm.DB) *ModelConnectorRepository {
	return &ModelConnectorRepository{db}
}

func (r *ModelConnectorRepository) Create(c *model.ModelConnector) error {
	return r.db.Create(c).Error
}

func (r *ModelConnectorRepository) Update(c *model.ModelConnector) error {
	return r.db.Save(c).Error
}

func (r *ModelConnectorRepository) Delete(id string) error {
	return r.db.Delete(&model.ModelConnector{}, "id = ?", id).Error
}

func (r *ModelConnectorRepository) FindByID(id string) (*model.ModelConnector, error) {
	var c model.ModelConnector
	err := r.db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *ModelConnectorRepository) List(page, pageSize int) ([]model.ModelConnector, int64, error) {
	var items []model.ModelConnector
	var total int64
	if err := r.db.Model(&model.ModelConnector{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&items).Error
	return items, total, err
}
