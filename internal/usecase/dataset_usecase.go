package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardelias/judgeboard/internal/config"
	"github.com/ardelias/judgeboard/internal/model"
	"github.com/ardelias/judgeboard/internal/prompt"
	"github.com/ardelias/judgeboard/internal/repository"
	"github.com/ardelias/judgeboard/internal/service"
	"github.com/ardelias/judgeboard/internal/tabular"
	"github.com/google/uuid"
)

// FileStore is the slice of ObjectStorage the dataset flow needs.
type FileStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type DatasetUsecase struct {
	repo  *repository.DatasetRepository
	store FileStore
}

func NewDatasetUsecase(repo *repository.DatasetRepository, store FileStore) *DatasetUsecase {
	return &DatasetUsecase{repo: repo, store: store}
}

func (uc *DatasetUsecase) Create(name, description string) (*model.Dataset, error) {
	if name == "" {
		return nil, fmt.Errorf("dataset name is required")
	}
	d := &model.Dataset{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *DatasetUsecase) Get(id string) (*model.Dataset, error) {
	return uc.repo.FindByID(id)
}

func (uc *DatasetUsecase) List(page, pageSize int) ([]model.Dataset, int64, error) {
	return uc.repo.List(page, pageSize)
}

func (uc *DatasetUsecase) Update(id, name, description string) (*model.Dataset, error) {
	d, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		d.Name = name
	}
	d.Description = description
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *DatasetUsecase) Delete(ctx context.Context, id string) error {
	versions, err := uc.repo.ListVersions(id)
	if err != nil {
		return err
	}
	for _, v := range versions {
		// best effort, an orphaned object is not worth failing the delete
		_ = uc.store.Delete(ctx, v.ObjectKey)
	}
	return uc.repo.Delete(id)
}

// UploadVersion stores the raw file in object storage and records a new
// dataset version. The file is parsed once here to validate it and count
// rows; the mapping must reference existing columns and valid placeholder
// tokens. The newest version becomes current; older versions stay
// addressable by id for runs that reference them.
func (uc *DatasetUsecase) UploadVersion(ctx context.Context, datasetID, filename string, content []byte, mappingJSON string) (*model.DatasetVersion, error) {
	d, err := uc.repo.FindByID(datasetID)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Parse(filename, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	mapping, err := ParseMapping(mappingJSON)
	if err != nil {
		return nil, err
	}
	if err := validateMapping(table, mapping); err != nil {
		return nil, err
	}

	number, err := uc.repo.NextVersionNumber(datasetID)
	if err != nil {
		return nil, err
	}

	versionID := uuid.New()
	key := service.DatasetObjectKey(config.LoadAppConfig().ProjectID, datasetID, versionID.String())
	if err := uc.store.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), contentTypeFor(filename)); err != nil {
		return nil, err
	}

	v := &model.DatasetVersion{
		ID:        versionID,
		DatasetID: d.ID,
		Number:    number,
		ObjectKey: key,
		Filename:  filename,
		RowCount:  len(table.Rows),
		Mapping:   mappingJSON,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateVersion(v); err != nil {
		return nil, err
	}

	d.CurrentVersionID = &v.ID
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(d); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateMapping replaces a version's column mapping. The stored file is
// re-parsed so the new mapping is validated against the real columns.
func (uc *DatasetUsecase) UpdateMapping(ctx context.Context, datasetID, versionID, mappingJSON string) (*model.DatasetVersion, error) {
	v, err := uc.repo.FindVersionByID(versionID)
	if err != nil {
		return nil, err
	}
	if v.DatasetID.String() != datasetID {
		return nil, fmt.Errorf("version %s does not belong to dataset %s", versionID, datasetID)
	}

	mapping, err := ParseMapping(mappingJSON)
	if err != nil {
		return nil, err
	}
	table, err := uc.loadTable(ctx, v)
	if err != nil {
		return nil, err
	}
	if err := validateMapping(table, mapping); err != nil {
		return nil, err
	}

	v.Mapping = mappingJSON
	if err := uc.repo.UpdateVersion(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *DatasetUsecase) ListVersions(datasetID string) ([]model.DatasetVersion, error) {
	return uc.repo.ListVersions(datasetID)
}

// DownloadURL returns a short-lived presigned link to the original file.
func (uc *DatasetUsecase) DownloadURL(ctx context.Context, datasetID, versionID string) (string, error) {
	v, err := uc.repo.FindVersionByID(versionID)
	if err != nil {
		return "", err
	}
	if v.DatasetID.String() != datasetID {
		return "", fmt.Errorf("version %s does not belong to dataset %s", versionID, datasetID)
	}
	return uc.store.PresignedGet(ctx, v.ObjectKey, 15*time.Minute)
}

// Preview downloads and parses a version's file, returning the first n rows.
func (uc *DatasetUsecase) Preview(ctx context.Context, datasetID, versionID string, n int) (*tabular.Table, error) {
	v, err := uc.repo.FindVersionByID(versionID)
	if err != nil {
		return nil, err
	}
	if v.DatasetID.String() != datasetID {
		return nil, fmt.Errorf("version %s does not belong to dataset %s", versionID, datasetID)
	}

	table, err := uc.loadTable(ctx, v)
	if err != nil {
		return nil, err
	}
	return table.Sample(n), nil
}

func (uc *DatasetUsecase) loadTable(ctx context.Context, v *model.DatasetVersion) (*tabular.Table, error) {
	reader, err := uc.store.Download(ctx, v.ObjectKey)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", v.ObjectKey, err)
	}
	return tabular.Parse(v.Filename, bytes.NewReader(content))
}

// ParseMapping decodes a jsonb column -> token object. Empty mapping is
// allowed at upload time; the run preview will reject it if the prompt needs
// placeholders.
func ParseMapping(mappingJSON string) (map[string]string, error) {
	if strings.TrimSpace(mappingJSON) == "" {
		return map[string]string{}, nil
	}
	var mapping map[string]string
	if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
		return nil, fmt.Errorf("mapping is not a valid JSON object: %w", err)
	}
	return mapping, nil
}

func validateMapping(table *tabular.Table, mapping map[string]string) error {
	for col, token := range mapping {
		if table.ColumnIndex(col) < 0 {
			return fmt.Errorf("mapped column %q not found in file", col)
		}
		if !prompt.ValidName(token) {
			return fmt.Errorf("invalid placeholder token %q for column %q", token, col)
		}
	}
	return nil
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
