package usecase

import (
	"context"
	"testing"

	"github.com/ardelias/judgeboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadVersionAdvancesCurrent(t *testing.T) {
	repo := repository.NewDatasetRepository(newTestDB(t))
	uc := NewDatasetUsecase(repo, newFakeFileStore())
	ctx := context.Background()

	d, err := uc.Create("qa pairs", "")
	require.NoError(t, err)

	v1, err := uc.UploadVersion(ctx, d.ID.String(), "qa.csv", []byte("q,a\nq0,a0\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Number)

	got, err := repo.FindByID(d.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.CurrentVersionID)
	assert.Equal(t, v1.ID, *got.CurrentVersionID)

	v2, err := uc.UploadVersion(ctx, d.ID.String(), "qa.csv", []byte("q,a\nq0,a0\nq1,a1\n"), `{"q":"question"}`)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Number)
	assert.Equal(t, 2, v2.RowCount)

	got, err = repo.FindByID(d.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.CurrentVersionID)
	assert.Equal(t, v2.ID, *got.CurrentVersionID)

	versions, err := uc.ListVersions(d.ID.String())
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}
