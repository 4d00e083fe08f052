package usecase

import (
	"fmt"
	"time"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/prompt"
	"github.com/ardelias/judgeboard/internal/repository"
)

type PromptTemplateUsecase struct {
	repo *repository.PromptTemplateRepository
}

func NewPromptTemplateUsecase(repo *repository.PromptTemplateRepository) *PromptTemplateUsecase {
	return &PromptTemplateUsecase{repo: repo}
}

func (uc *PromptTemplateUsecase) Create(name, description string) (*model.PromptTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	t := &model.PromptTemplate{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *PromptTemplateUsecase) Get(id string) (*model.PromptTemplate, error) {
	return uc.repo.FindByID(id)
}

func (uc *PromptTemplateUsecase) List(page, pageSize int) ([]model.PromptTemplate, int64, error) {
	return uc.repo.List(page, pageSize)
}

func (uc *PromptTemplateUsecase) Update(id, name, description string) (*model.PromptTemplate, error) {
	t, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		t.Name = name
	}
	t.Description = description
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *PromptTemplateUsecase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// AddVersion appends an immutable version. Content must parse as a prompt
// template so a run can never reference an unrenderable version. The first
// version becomes current automatically.
func (uc *PromptTemplateUsecase) AddVersion(templateID, content, note string) (*model.PromptVersion, error) {
	if _, err := prompt.Parse(content); err != nil {
		return nil, fmt.Errorf("invalid template content: %w", err)
	}

	t, err := uc.repo.FindByID(templateID)
	if err != nil {
		return nil, err
	}

	number, err := uc.repo.NextVersionNumber(templateID)
	if err != nil {
		return nil, err
	}

	v := &model.PromptVersion{
		TemplateID: t.ID,
		Number:     number,
		Content:    content,
		Note:       note,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.CreateVersion(v); err != nil {
		return nil, err
	}

	if t.CurrentVersionID == nil {
		t.CurrentVersionID = &v.ID
		t.UpdatedAt = time.Now()
		if err := uc.repo.Update(t); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (uc *PromptTemplateUsecase) ListVersions(templateID string) ([]model.PromptVersion, error) {
	return uc.repo.ListVersions(templateID)
}

// SetCurrentVersion moves the current pointer; the version must belong to
// the template.
func (uc *PromptTemplateUsecase) SetCurrentVersion(templateID, versionID string) (*model.PromptTemplate, error) {
	t, err := uc.repo.FindByID(templateID)
	if err != nil {
		return nil, err
	}
	v, err := uc.repo.FindVersionByID(versionID)
	if err != nil {
		return nil, err
	}
	if v.TemplateID != t.ID {
		return nil, fmt.Errorf("version %s does not belong to template %s", versionID, templateID)
	}
	t.CurrentVersionID = &v.ID
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}
