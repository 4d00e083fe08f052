package usecase

import (
	"fmt"
	"time"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/repository"
	"github.com/ardelias/judgeboard/internal/service"
	"github.com/tidwall/gjson"
)

type ModelConnectorUsecase struct {
	repo     *repository.ModelConnectorRepository
	registry *service.JudgeRegistry
}

func NewModelConnectorUsecase(repo *repository.ModelConnectorRepository, registry *service.JudgeRegistry) *ModelConnectorUsecase {
	return &ModelConnectorUsecase{repo: repo, registry: registry}
}

func (uc *ModelConnectorUsecase) Create(name, provider, configJSON string) (*model.ModelConnector, error) {
	if err := uc.validate(name, provider, configJSON); err != nil {
		return nil, err
	}
	c := &model.ModelConnector{
		Name:      name,
		Provider:  provider,
		Config:    configJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ModelConnectorUsecase) Get(id string) (*model.ModelConnector, error) {
	return uc.repo.FindByID(id)
}

func (uc *ModelConnectorUsecase) List(page, pageSize int) ([]model.ModelConnector, int64, error) {
	return uc.repo.List(page, pageSize)
}

func (uc *ModelConnectorUsecase) Update(id, name, provider, configJSON string) (*model.ModelConnector, error) {
	c, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = c.Name
	}
	if provider == "" {
		provider = c.Provider
	}
	if err := uc.validate(name, provider, configJSON); err != nil {
		return nil, err
	}
	c.Name = name
	c.Provider = provider
	c.Config = configJSON
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ModelConnectorUsecase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *ModelConnectorUsecase) validate(name, provider, configJSON string) error {
	if name == "" {
		return fmt.Errorf("connector name is required")
	}
	if _, err := uc.registry.For(provider); err != nil {
		return err
	}
	if !gjson.Valid(configJSON) {
		return fmt.Errorf("config is not valid JSON")
	}
	if gjson.Get(configJSON, "model").String() == "" {
		return fmt.Errorf("config must set a model name")
	}
	return nil
}
