package repository

import (
	"testing"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPromptTemplateCRUD(t *testing.T) {
	repo := NewPromptTemplateRepository(newTestDB(t))

	tmpl := &model.PromptTemplate{Name: "toxicity judge", Description: "scores replies"}
	require.NoError(t, repo.Create(tmpl))
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", tmpl.ID.String())

	got, err := repo.FindByID(tmpl.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "toxicity judge", got.Name)

	got.Description = "updated"
	require.NoError(t, repo.Update(got))

	items, total, err := repo.List(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "updated", items[0].Description)

	require.NoError(t, repo.Delete(tmpl.ID.String()))
	_, err = repo.FindByID(tmpl.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPromptVersionNumbering(t *testing.T) {
	repo := NewPromptTemplateRepository(newTestDB(t))

	tmpl := &model.PromptTemplate{Name: "judge"}
	require.NoError(t, repo.Create(tmpl))

	n, err := repo.NextVersionNumber(tmpl.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v1 := &model.PromptVersion{TemplateID: tmpl.ID, Number: 1, Content: "Rate {{answer}}"}
	require.NoError(t, repo.CreateVersion(v1))
	v2 := &model.PromptVersion{TemplateID: tmpl.ID, Number: 2, Content: "Rate {{answer}} carefully"}
	require.NoError(t, repo.CreateVersion(v2))

	n, err = repo.NextVersionNumber(tmpl.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	versions, err := repo.ListVersions(tmpl.ID.String())
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Number)
	assert.Equal(t, 2, versions[1].Number)

	got, err := repo.FindVersionByID(v2.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Rate {{answer}} carefully", got.Content)
}
