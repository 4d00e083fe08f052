package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/prompt"
	"github.com/ardelias/judgeboard/internal/repository"
	"github.com/ardelias/judgeboard/internal/runner"
	"github.com/ardelias/judgeboard/internal/service"
	"github.com/ardelias/judgeboard/internal/tabular"
	"github.com/tidwall/gjson"
)

const defaultTemperature = 0.1

type RunUsecase struct {
	runRepo     *repository.EvaluationRunRepository
	datasetRepo *repository.DatasetRepository
	promptRepo  *repository.PromptTemplateRepository
	paramRepo   *repository.EvalParameterRepository
	connRepo    *repository.ModelConnectorRepository
	store       FileStore
	registry    *service.JudgeRegistry
}

func NewRunUsecase(
	runRepo *repository.EvaluationRunRepository,
	datasetRepo *repository.DatasetRepository,
	promptRepo *repository.PromptTemplateRepository,
	paramRepo *repository.EvalParameterRepository,
	connRepo *repository.ModelConnectorRepository,
	store FileStore,
	registry *service.JudgeRegistry,
) *RunUsecase {
	return &RunUsecase{
		runRepo:     runRepo,
		datasetRepo: datasetRepo,
		promptRepo:  promptRepo,
		paramRepo:   paramRepo,
		connRepo:    connRepo,
		store:       store,
		registry:    registry,
	}
}

type CreateRunInput struct {
	Name             string            `json:"name"`
	DatasetVersionID string            `json:"dataset_version_id"`
	PromptVersionID  string            `json:"prompt_version_id"`
	ConnectorID      string            `json:"connector_id"`
	ParameterIDs     []string          `json:"parameter_ids"`
	GroundTruth      map[string]string `json:"ground_truth,omitempty"`
	ConcurrencyLimit int               `json:"concurrency_limit"`
	SampleSize       int               `json:"sample_size"`
}

// Create validates every reference and records the run as pending. Nothing
// is parsed or called yet; that happens at preview/start.
func (uc *RunUsecase) Create(in CreateRunInput) (*model.EvaluationRun, error) {
	dv, err := uc.datasetRepo.FindVersionByID(in.DatasetVersionID)
	if err != nil {
		return nil, fmt.Errorf("dataset version: %w", err)
	}
	pv, err := uc.promptRepo.FindVersionByID(in.PromptVersionID)
	if err != nil {
		return nil, fmt.Errorf("prompt version: %w", err)
	}
	conn, err := uc.connRepo.FindByID(in.ConnectorID)
	if err != nil {
		return nil, fmt.Errorf("model connector: %w", err)
	}
	if _, err := uc.registry.For(conn.Provider); err != nil {
		return nil, err
	}
	if len(in.ParameterIDs) == 0 {
		return nil, fmt.Errorf("at least one evaluation parameter is required")
	}
	params, err := uc.paramRepo.FindByIDs(in.ParameterIDs)
	if err != nil {
		return nil, err
	}
	if len(params) != len(in.ParameterIDs) {
		return nil, fmt.Errorf("unknown evaluation parameter id")
	}

	if in.ConcurrencyLimit < 1 {
		in.ConcurrencyLimit = 1
	}

	paramIDsJSON, _ := json.Marshal(in.ParameterIDs)
	groundTruthJSON := "{}"
	if len(in.GroundTruth) > 0 {
		b, _ := json.Marshal(in.GroundTruth)
		groundTruthJSON = string(b)
	}

	run := &model.EvaluationRun{
		Name:             in.Name,
		DatasetVersionID: dv.ID,
		PromptVersionID:  pv.ID,
		ConnectorID:      conn.ID,
		ParameterIDs:     string(paramIDsJSON),
		Status:           model.RunStatusPending,
		Progress:         0,
		ConcurrencyLimit: in.ConcurrencyLimit,
		SampleSize:       in.SampleSize,
		PreviewRows:      "{}",
		Results:          "[]",
		GroundTruth:      groundTruthJSON,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := uc.runRepo.Create(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (uc *RunUsecase) Get(id string) (*model.EvaluationRun, error) {
	return uc.runRepo.FindByID(id)
}

func (uc *RunUsecase) List(page, pageSize int) ([]model.EvaluationRun, int64, error) {
	return uc.runRepo.List(page, pageSize)
}

func (uc *RunUsecase) Delete(id string) error {
	return uc.runRepo.Delete(id)
}

// Preview downloads the dataset file, parses it, stores the sampled rows on
// the run and moves it to data_previewed. Allowed again on an already
// previewed run so the user can re-sample before starting.
func (uc *RunUsecase) Preview(ctx context.Context, id string) (*model.EvaluationRun, *tabular.Table, error) {
	run, err := uc.runRepo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	if run.Status != model.RunStatusPending && run.Status != model.RunStatusDataPreviewed {
		return nil, nil, fmt.Errorf("run %s cannot be previewed in status %q", id, run.Status)
	}

	dv, err := uc.datasetRepo.FindVersionByID(run.DatasetVersionID.String())
	if err != nil {
		return nil, nil, err
	}

	reader, err := uc.store.Download(ctx, dv.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", dv.ObjectKey, err)
	}
	table, err := tabular.Parse(dv.Filename, bytes.NewReader(content))
	if err != nil {
		return nil, nil, err
	}

	sample := table.Sample(run.SampleSize)
	previewJSON, err := json.Marshal(sample)
	if err != nil {
		return nil, nil, err
	}

	run.PreviewRows = string(previewJSON)
	run.Status = model.RunStatusDataPreviewed
	run.UpdatedAt = time.Now()
	if err := uc.runRepo.Update(run); err != nil {
		return nil, nil, err
	}
	return run, sample, nil
}

// Start moves a previewed run to processing and launches the batch executor
// in the background. Once launched there is no cancellation path; abandoning
// the process abandons in-flight work.
func (uc *RunUsecase) Start(ctx context.Context, id string) (*model.EvaluationRun, error) {
	run, err := uc.runRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunStatusDataPreviewed {
		return nil, fmt.Errorf("run %s cannot start in status %q", id, run.Status)
	}

	spec, judge, err := uc.buildSpec(run)
	if err != nil {
		return nil, err
	}

	run.Status = model.RunStatusProcessing
	run.Progress = 0
	run.Results = "[]"
	run.ErrorMessage = ""
	run.UpdatedAt = time.Now()
	if err := uc.runRepo.Update(run); err != nil {
		return nil, err
	}

	go uc.execute(run.ID.String(), *spec, judge)

	return run, nil
}

func (uc *RunUsecase) buildSpec(run *model.EvaluationRun) (*runner.Spec, runner.Judge, error) {
	pv, err := uc.promptRepo.FindVersionByID(run.PromptVersionID.String())
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := prompt.Parse(pv.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("prompt version %s: %w", pv.ID, err)
	}

	dv, err := uc.datasetRepo.FindVersionByID(run.DatasetVersionID.String())
	if err != nil {
		return nil, nil, err
	}
	mapping, err := ParseMapping(dv.Mapping)
	if err != nil {
		return nil, nil, err
	}

	var table tabular.Table
	if err := json.Unmarshal([]byte(run.PreviewRows), &table); err != nil {
		return nil, nil, fmt.Errorf("previewed rows are corrupt: %w", err)
	}

	// every placeholder must be fed by some mapped column
	mapped := map[string]bool{}
	for _, token := range mapping {
		mapped[token] = true
	}
	for _, name := range tmpl.Placeholders() {
		if !mapped[name] {
			return nil, nil, fmt.Errorf("placeholder %q has no mapped column", name)
		}
	}

	var paramIDs []string
	if err := json.Unmarshal([]byte(run.ParameterIDs), &paramIDs); err != nil {
		return nil, nil, fmt.Errorf("parameter ids are corrupt: %w", err)
	}
	params, err := uc.paramRepo.FindByIDs(paramIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(params) != len(paramIDs) {
		return nil, nil, fmt.Errorf("unknown evaluation parameter id")
	}
	runnerParams := make([]runner.Parameter, 0, len(params))
	for _, p := range params {
		var labels []string
		if err := json.Unmarshal([]byte(p.Labels), &labels); err != nil || len(labels) == 0 {
			return nil, nil, fmt.Errorf("parameter %q has no usable labels", p.Name)
		}
		runnerParams = append(runnerParams, runner.Parameter{
			Name:       p.Name,
			Definition: p.Definition,
			Labels:     labels,
		})
	}

	conn, err := uc.connRepo.FindByID(run.ConnectorID.String())
	if err != nil {
		return nil, nil, err
	}
	judge, err := uc.registry.For(conn.Provider)
	if err != nil {
		return nil, nil, err
	}
	modelName := gjson.Get(conn.Config, "model").String()
	if modelName == "" {
		return nil, nil, fmt.Errorf("connector %s has no model name configured", conn.ID)
	}
	temperature := defaultTemperature
	if t := gjson.Get(conn.Config, "temperature"); t.Exists() {
		temperature = t.Float()
	}

	var groundTruth map[string]string
	if err := json.Unmarshal([]byte(run.GroundTruth), &groundTruth); err != nil {
		groundTruth = nil
	}

	return &runner.Spec{
		Table:       &table,
		Mapping:     mapping,
		Template:    tmpl,
		Parameters:  runnerParams,
		GroundTruth: groundTruth,
		ModelName:   modelName,
		Temperature: temperature,
		Concurrency: run.ConcurrencyLimit,
	}, judge, nil
}

// progressSink persists chunk progress through the run repository.
type progressSink struct {
	repo  *repository.EvaluationRunRepository
	runID string
}

func (s *progressSink) SaveProgress(_ context.Context, progress float64, results []model.RowResult) error {
	b, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.repo.UpdateProgress(s.runID, progress, string(b))
}

func (uc *RunUsecase) execute(runID string, spec runner.Spec, judge runner.Judge) {
	ctx := context.Background()
	sink := &progressSink{repo: uc.runRepo, runID: runID}

	results, err := runner.NewExecutor(judge).Run(ctx, spec, sink)
	if err != nil {
		log.Printf("run %s failed: %v", runID, err)
		if err := uc.runRepo.SetStatus(runID, model.RunStatusFailed, err.Error()); err != nil {
			log.Printf("run %s: could not record failure: %v", runID, err)
		}
		return
	}

	b, _ := json.Marshal(results)
	if err := uc.runRepo.UpdateProgress(runID, 100, string(b)); err != nil {
		log.Printf("run %s failed: persist final results: %v", runID, err)
		_ = uc.runRepo.SetStatus(runID, model.RunStatusFailed, err.Error())
		return
	}
	if err := uc.runRepo.SetStatus(runID, model.RunStatusCompleted, ""); err != nil {
		log.Printf("run %s: could not mark completed: %v", runID, err)
	}
	log.Printf("run %s completed: %d rows", runID, len(results))
}

func (uc *RunUsecase) decodeResults(run *model.EvaluationRun) ([]model.RowResult, error) {
	var results []model.RowResult
	if err := json.Unmarshal([]byte(run.Results), &results); err != nil {
		return nil, fmt.Errorf("run results are corrupt: %w", err)
	}
	return results, nil
}

// Metrics aggregates label counts per parameter over the current results.
// Usable while a run is still processing; it reflects whatever has been
// persisted so far.
func (uc *RunUsecase) Metrics(id string) (*RunMetrics, error) {
	run, err := uc.runRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	results, err := uc.decodeResults(run)
	if err != nil {
		return nil, err
	}
	return ComputeMetrics(results), nil
}

// Accuracy compares judged labels against captured ground-truth values.
func (uc *RunUsecase) Accuracy(id string) ([]ParameterAccuracy, error) {
	run, err := uc.runRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	results, err := uc.decodeResults(run)
	if err != nil {
		return nil, err
	}
	acc := ComputeAccuracy(results)
	if len(acc) == 0 {
		return nil, fmt.Errorf("run %s has no ground-truth data", id)
	}
	return acc, nil
}

func (uc *RunUsecase) SaveAnalysis(runID, name, filterJSON string) (*model.StoredAnalysis, error) {
	run, err := uc.runRepo.FindByID(runID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("analysis name is required")
	}
	if _, err := parseFilter(filterJSON); err != nil {
		return nil, err
	}
	a := &model.StoredAnalysis{
		RunID:     run.ID,
		Name:      name,
		Filter:    filterJSON,
		CreatedAt: time.Now(),
	}
	if err := uc.runRepo.CreateAnalysis(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *RunUsecase) ListAnalyses(runID string) ([]model.StoredAnalysis, error) {
	return uc.runRepo.ListAnalyses(runID)
}

func (uc *RunUsecase) DeleteAnalysis(runID, analysisID string) error {
	return uc.runRepo.DeleteAnalysis(runID, analysisID)
}

// ApplyAnalysis returns the result rows matching a stored analysis filter.
func (uc *RunUsecase) ApplyAnalysis(runID, analysisID string) ([]model.RowResult, error) {
	run, err := uc.runRepo.FindByID(runID)
	if err != nil {
		return nil, err
	}
	analyses, err := uc.runRepo.ListAnalyses(runID)
	if err != nil {
		return nil, err
	}
	var filterJSON string
	found := false
	for _, a := range analyses {
		if a.ID.String() == analysisID {
			filterJSON = a.Filter
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("analysis %s not found", analysisID)
	}
	filter, err := parseFilter(filterJSON)
	if err != nil {
		return nil, err
	}
	results, err := uc.decodeResults(run)
	if err != nil {
		return nil, err
	}
	return FilterResults(results, filter), nil
}

func parseFilter(filterJSON string) (map[string]string, error) {
	var filter map[string]string
	if err := json.Unmarshal([]byte(filterJSON), &filter); err != nil {
		return nil, fmt.Errorf("filter is not a valid JSON object: %w", err)
	}
	return filter, nil
}
