package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/repository"
)

type EvalParameterUsecase struct {
	repo *repository.EvalParameterRepository
}

func NewEvalParameterUsecase(repo *repository.EvalParameterRepository) *EvalParameterUsecase {
	return &EvalParameterUsecase{repo: repo}
}

func (uc *EvalParameterUsecase) Create(name, definition string, labels []string) (*model.EvalParameter, error) {
	labelsJSON, err := validateLabels(name, labels)
	if err != nil {
		return nil, err
	}
	p := &model.EvalParameter{
		Name:       name,
		Definition: definition,
		Labels:     labelsJSON,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *EvalParameterUsecase) Get(id string) (*model.EvalParameter, error) {
	return uc.repo.FindByID(id)
}

func (uc *EvalParameterUsecase) List(page, pageSize int) ([]model.EvalParameter, int64, error) {
	return uc.repo.List(page, pageSize)
}

func (uc *EvalParameterUsecase) Update(id, name, definition string, labels []string) (*model.EvalParameter, error) {
	p, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		p.Name = name
	}
	labelsJSON, err := validateLabels(p.Name, labels)
	if err != nil {
		return nil, err
	}
	p.Definition = definition
	p.Labels = labelsJSON
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *EvalParameterUsecase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func validateLabels(name string, labels []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("parameter name is required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("parameter needs at least one label")
	}
	seen := map[string]bool{}
	for _, l := range labels {
		if l == "" {
			return "", fmt.Errorf("empty label not allowed")
		}
		if seen[l] {
			return "", fmt.Errorf("duplicate label %q", l)
		}
		seen[l] = true
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
