package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/prompt"
	"github.com/ardelias/judgeboard/internal/tabular"
)

// Judge is the slice of the provider client the executor needs.
type Judge interface {
	Judge(ctx context.Context, modelName string, temperature float64, prompt string) (string, error)
}

// ProgressSink receives progress and partial results after every chunk. A
// sink error aborts the run; per-row judge errors never do.
type ProgressSink interface {
	SaveProgress(ctx context.Context, progress float64, results []model.RowResult) error
}

// Parameter is one judgment axis the model must label.
type Parameter struct {
	Name       string
	Definition string
	Labels     []string
}

// Spec is everything a run needs once it has been previewed and started.
type Spec struct {
	Table       *tabular.Table
	Mapping     map[string]string // column -> placeholder token
	Template    *prompt.Template
	Parameters  []Parameter
	GroundTruth map[string]string // parameter name -> column name
	ModelName   string
	Temperature float64
	Concurrency int
}

// Executor runs dataset rows against a judge in fixed-size chunks. Chunks are
// processed sequentially; within a chunk every row gets its own goroutine and
// writes into its captured index, so out-of-order completion is fine. One
// result slot per input row, always.
type Executor struct {
	judge Judge
}

func NewExecutor(judge Judge) *Executor {
	return &Executor{judge: judge}
}

func (e *Executor) Run(ctx context.Context, spec Spec, sink ProgressSink) ([]model.RowResult, error) {
	rows := spec.Table.Rows
	results := make([]model.RowResult, len(rows))

	limit := spec.Concurrency
	if limit < 1 {
		limit = 1
	}

	expectedCols := groundTruthColumns(spec)

	for start := 0; start < len(rows); start += limit {
		end := start + limit
		if end > len(rows) {
			end = len(rows)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = e.evaluateRow(ctx, spec, expectedCols, idx)
			}(i)
		}
		wg.Wait()

		progress := float64(end) / float64(len(rows)) * 100
		if err := sink.SaveProgress(ctx, progress, results[:end]); err != nil {
			return results, fmt.Errorf("persist progress after row %d: %w", end, err)
		}
	}

	return results, nil
}

func (e *Executor) evaluateRow(ctx context.Context, spec Spec, expectedCols map[string]int, idx int) model.RowResult {
	result := model.RowResult{RowIndex: idx}
	row := spec.Table.Rows[idx]

	for name, col := range expectedCols {
		if result.Expected == nil {
			result.Expected = map[string]string{}
		}
		if col < len(row) {
			result.Expected[name] = row[col]
		}
	}

	values := spec.Table.MapRow(row, spec.Mapping)
	rendered, err := spec.Template.Render(values)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	reply, err := e.judge.Judge(ctx, spec.ModelName, spec.Temperature, BuildPrompt(rendered, spec.Parameters))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Raw = reply

	labels, err := parseLabels(reply, spec.Parameters)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Labels = labels

	return result
}

// BuildPrompt appends the judgment instructions to the rendered template: one
// block per parameter plus the required JSON shape.
func BuildPrompt(rendered string, params []Parameter) string {
	var b strings.Builder
	b.WriteString(rendered)
	b.WriteString("\n\nEvaluate the content above on the following parameters:\n")
	for _, p := range params {
		fmt.Fprintf(&b, "- %s: %s (allowed labels: %s)\n", p.Name, p.Definition, strings.Join(p.Labels, ", "))
	}
	b.WriteString("\nReturn your answer STRICTLY as a JSON object mapping each parameter name to one of its allowed labels:\n{")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: \"<label>\"", p.Name)
	}
	b.WriteString("}")
	return b.String()
}

// parseLabels validates the model reply: every parameter must be present and
// carry one of its allowed labels (compared case-insensitively, canonical
// casing stored).
func parseLabels(reply string, params []Parameter) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(prompt.ExtractJSON(reply)), &raw); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}

	labels := make(map[string]string, len(params))
	for _, p := range params {
		v, ok := raw[p.Name]
		if !ok {
			return nil, fmt.Errorf("missing parameter %q in reply", p.Name)
		}
		got, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q is not a string", p.Name)
		}
		canonical := ""
		for _, allowed := range p.Labels {
			if strings.EqualFold(strings.TrimSpace(got), allowed) {
				canonical = allowed
				break
			}
		}
		if canonical == "" {
			return nil, fmt.Errorf("unexpected label %q for parameter %q", got, p.Name)
		}
		labels[p.Name] = canonical
	}
	return labels, nil
}

func groundTruthColumns(spec Spec) map[string]int {
	cols := map[string]int{}
	for name, col := range spec.GroundTruth {
		if idx := spec.Table.ColumnIndex(col); idx >= 0 {
			cols[name] = idx
		}
	}
	return cols
}
