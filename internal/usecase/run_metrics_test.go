package usecase

import (
	"testing"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []model.RowResult {
	return []model.RowResult{
		{RowIndex: 0, Labels: map[string]string{"Correctness": "Correct"}, Expected: map[string]string{"Correctness": "Correct"}},
		{RowIndex: 1, Labels: map[string]string{"Correctness": "Incorrect"}, Expected: map[string]string{"Correctness": "Correct"}},
		{RowIndex: 2, Labels: map[string]string{"Correctness": "Correct"}, Expected: map[string]string{"Correctness": "correct"}},
		{RowIndex: 3, Error: "rate limited"},
		{RowIndex: 4, Labels: map[string]string{"Correctness": "Correct"}},
	}
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(sampleResults())

	assert.Equal(t, 5, m.TotalRows)
	assert.Equal(t, 1, m.ErrorRows)
	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "Correctness", m.Parameters[0].Parameter)
	assert.Equal(t, map[string]int{"Correct": 3, "Incorrect": 1}, m.Parameters[0].Counts)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.Equal(t, 0, m.TotalRows)
	assert.Empty(t, m.Parameters)
}

func TestComputeAccuracy(t *testing.T) {
	acc := ComputeAccuracy(sampleResults())

	require.Len(t, acc, 1)
	assert.Equal(t, "Correctness", acc[0].Parameter)
	// error row and the row without expected are excluded from the denominator
	assert.Equal(t, 3, acc[0].Judged)
	assert.Equal(t, 2, acc[0].Matched)
	assert.InDelta(t, 2.0/3.0, acc[0].Accuracy, 1e-9)
}

func TestComputeAccuracyNoGroundTruth(t *testing.T) {
	results := []model.RowResult{
		{RowIndex: 0, Labels: map[string]string{"Correctness": "Correct"}},
	}
	assert.Empty(t, ComputeAccuracy(results))
}

func TestFilterResults(t *testing.T) {
	results := sampleResults()

	matched := FilterResults(results, map[string]string{"Correctness": "Correct"})
	require.Len(t, matched, 3)
	for _, r := range matched {
		assert.Equal(t, "Correct", r.Labels["Correctness"])
	}

	assert.Len(t, FilterResults(results, map[string]string{"Correctness": "incorrect"}), 1)
	assert.Empty(t, FilterResults(results, map[string]string{"Fluency": "Good"}))
	assert.Len(t, FilterResults(results, nil), 5)
}
