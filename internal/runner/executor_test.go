package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/prompt"
	"github.com/ardelias/judgeboard/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJudge struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   func(call int, prompt string) (string, error)
}

func (f *fakeJudge) Judge(_ context.Context, _ string, _ float64, p string) (string, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.prompts = append(f.prompts, p)
	f.mu.Unlock()
	return f.reply(call, p)
}

type recordingSink struct {
	mu         sync.Mutex
	progresses []float64
	lastCount  int
	failAt     int // fail the nth call (1-based), 0 = never
	calls      int
}

func (s *recordingSink) SaveProgress(_ context.Context, progress float64, results []model.RowResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failAt > 0 && s.calls == s.failAt {
		return errors.New("db down")
	}
	s.progresses = append(s.progresses, progress)
	s.lastCount = len(results)
	return nil
}

func testSpec(t *testing.T, rows [][]string) Spec {
	t.Helper()
	tmpl, err := prompt.Parse("Q: {{question}} A: {{answer}}")
	require.NoError(t, err)
	return Spec{
		Table:    &tabular.Table{Columns: []string{"q", "a", "gt"}, Rows: rows},
		Mapping:  map[string]string{"q": "question", "a": "answer"},
		Template: tmpl,
		Parameters: []Parameter{
			{Name: "Correctness", Definition: "Is the answer correct?", Labels: []string{"Correct", "Incorrect"}},
		},
		ModelName:   "test-model",
		Concurrency: 2,
	}
}

func rows(n int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = []string{fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i), "Correct"}
	}
	return out
}

func TestRunOneResultPerRow(t *testing.T) {
	spec := testSpec(t, rows(5))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}
	sink := &recordingSink{}

	results, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, i, r.RowIndex)
		assert.Empty(t, r.Error)
		assert.Equal(t, "Correct", r.Labels["Correctness"])
	}
}

func TestRunProgressPerChunk(t *testing.T) {
	spec := testSpec(t, rows(5))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}
	sink := &recordingSink{}

	_, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	require.NoError(t, err)

	assert.Equal(t, []float64{40, 80, 100}, sink.progresses)
	assert.Equal(t, 5, sink.lastCount)
}

func TestRunRowErrorDoesNotAbort(t *testing.T) {
	spec := testSpec(t, rows(4))
	judge := &fakeJudge{reply: func(call int, p string) (string, error) {
		if call%2 == 1 {
			return "", errors.New("rate limited")
		}
		return `{"Correctness": "Incorrect"}`, nil
	}}
	sink := &recordingSink{}

	results, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	require.NoError(t, err)
	require.Len(t, results, 4)

	var failed, ok int
	for _, r := range results {
		if r.Error != "" {
			failed++
			assert.Empty(t, r.Labels)
		} else {
			ok++
			assert.Equal(t, "Incorrect", r.Labels["Correctness"])
		}
	}
	assert.Equal(t, 2, failed)
	assert.Equal(t, 2, ok)
}

func TestRunMalformedReplyIsRowError(t *testing.T) {
	spec := testSpec(t, rows(1))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return "I think the answer is pretty good!", nil
	}}

	results, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)
	assert.Contains(t, results[0].Error, "not valid JSON")
	assert.Equal(t, "I think the answer is pretty good!", results[0].Raw)
}

func TestRunUnexpectedLabelIsRowError(t *testing.T) {
	spec := testSpec(t, rows(1))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Maybe"}`, nil
	}}

	results, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)
	assert.Contains(t, results[0].Error, `unexpected label "Maybe"`)
}

func TestRunLabelCaseInsensitive(t *testing.T) {
	spec := testSpec(t, rows(1))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return "```json\n{\"Correctness\": \"correct\"}\n```", nil
	}}

	results, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)
	assert.Equal(t, "Correct", results[0].Labels["Correctness"])
}

func TestRunMissingParameterIsRowError(t *testing.T) {
	spec := testSpec(t, rows(1))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Fluency": "Correct"}`, nil
	}}

	results, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)
	assert.Contains(t, results[0].Error, `missing parameter "Correctness"`)
}

func TestRunSinkFailureAborts(t *testing.T) {
	spec := testSpec(t, rows(6))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}
	sink := &recordingSink{failAt: 2}

	_, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	assert.ErrorContains(t, err, "persist progress")
}

func TestRunConcurrencyCoercedToOne(t *testing.T) {
	spec := testSpec(t, rows(3))
	spec.Concurrency = 0
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}
	sink := &recordingSink{}

	_, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	require.NoError(t, err)
	// one chunk per row
	assert.Len(t, sink.progresses, 3)
}

func TestRunCapturesGroundTruth(t *testing.T) {
	spec := testSpec(t, [][]string{{"q0", "a0", "Incorrect"}})
	spec.GroundTruth = map[string]string{"Correctness": "gt"}
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}

	results, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)
	assert.Equal(t, "Incorrect", results[0].Expected["Correctness"])
}

func TestRunPromptContainsRowValuesAndSchema(t *testing.T) {
	spec := testSpec(t, rows(1))
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}

	_, err := NewExecutor(judge).Run(context.Background(), spec, &recordingSink{})
	require.NoError(t, err)

	require.Len(t, judge.prompts, 1)
	p := judge.prompts[0]
	assert.Contains(t, p, "Q: q0 A: a0")
	assert.Contains(t, p, "Correctness")
	assert.Contains(t, p, "allowed labels: Correct, Incorrect")
	assert.Contains(t, p, `"Correctness": "<label>"`)
}

func TestRunEmptyTable(t *testing.T) {
	spec := testSpec(t, nil)
	judge := &fakeJudge{reply: func(int, string) (string, error) {
		return `{"Correctness": "Correct"}`, nil
	}}
	sink := &recordingSink{}

	results, err := NewExecutor(judge).Run(context.Background(), spec, sink)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, sink.progresses)
}
