package repository

import (
	"testing"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRun(t *testing.T, repo *EvaluationRunRepository) *model.EvaluationRun {
	t.Helper()
	run := &model.EvaluationRun{
		Name:             "nightly eval",
		DatasetVersionID: uuid.New(),
		PromptVersionID:  uuid.New(),
		ConnectorID:      uuid.New(),
		ParameterIDs:     `["p1"]`,
		Status:           model.RunStatusPending,
		ConcurrencyLimit: 4,
		SampleSize:       50,
		PreviewRows:      "{}",
		Results:          "[]",
		GroundTruth:      "{}",
	}
	require.NoError(t, repo.Create(run))
	return run
}

func TestEvaluationRunProgress(t *testing.T) {
	repo := NewEvaluationRunRepository(newTestDB(t))
	run := seedRun(t, repo)

	partial := `[{"row_index":0,"labels":{"Correctness":"Correct"}}]`
	require.NoError(t, repo.UpdateProgress(run.ID.String(), 40, partial))

	got, err := repo.FindByID(run.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(40), got.Progress)
	assert.Equal(t, partial, got.Results)
	// status is untouched by progress writes
	assert.Equal(t, model.RunStatusPending, got.Status)
}

func TestEvaluationRunSetStatus(t *testing.T) {
	repo := NewEvaluationRunRepository(newTestDB(t))
	run := seedRun(t, repo)

	require.NoError(t, repo.SetStatus(run.ID.String(), model.RunStatusFailed, "persist progress after row 3: disk full"))

	got, err := repo.FindByID(run.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, "persist progress after row 3: disk full", got.ErrorMessage)

	require.NoError(t, repo.SetStatus(run.ID.String(), model.RunStatusCompleted, ""))
	got, err = repo.FindByID(run.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCompleted, got.Status)
	assert.Empty(t, got.ErrorMessage)
}

func TestEvaluationRunAnalyses(t *testing.T) {
	repo := NewEvaluationRunRepository(newTestDB(t))
	run := seedRun(t, repo)

	a := &model.StoredAnalysis{RunID: run.ID, Name: "only incorrect", Filter: `{"Correctness":"Incorrect"}`}
	require.NoError(t, repo.CreateAnalysis(a))

	analyses, err := repo.ListAnalyses(run.ID.String())
	require.NoError(t, err)
	require.Len(t, analyses, 1)
	assert.Equal(t, "only incorrect", analyses[0].Name)

	// scoped delete: wrong run id must not remove it
	require.NoError(t, repo.DeleteAnalysis(uuid.NewString(), a.ID.String()))
	analyses, err = repo.ListAnalyses(run.ID.String())
	require.NoError(t, err)
	assert.Len(t, analyses, 1)

	require.NoError(t, repo.DeleteAnalysis(run.ID.String(), a.ID.String()))
	analyses, err = repo.ListAnalyses(run.ID.String())
	require.NoError(t, err)
	assert.Empty(t, analyses)
}
