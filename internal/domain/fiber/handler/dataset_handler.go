package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ardelias/judgeboard/internal/response"
	"github.com/ardelias/judgeboard/internal/usecase"
	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 10 * 1024 * 1024

type DatasetHandler struct {
	uc *usecase.DatasetUsecase
}

func NewDatasetHandler(uc *usecase.DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{uc: uc}
}

func (h *DatasetHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/datasets", h.Create)
	app.Get("/datasets", h.List)
	app.Get("/datasets/:id", h.Get)
	app.Put("/datasets/:id", h.Update)
	app.Delete("/datasets/:id", h.Delete)
	app.Post("/datasets/:id/versions", h.UploadVersion)
	app.Get("/datasets/:id/versions", h.ListVersions)
	app.Put("/datasets/:id/versions/:versionId/mapping", h.UpdateMapping)
	app.Get("/datasets/:id/versions/:versionId/preview", h.Preview)
	app.Get("/datasets/:id/versions/:versionId/download", h.DownloadURL)
}

type datasetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *DatasetHandler) Create(c *fiber.Ctx) error {
	var req datasetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	d, err := h.uc.Create(req.Name, req.Description)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create dataset",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create dataset",
		Data:    d,
	})
}

func (h *DatasetHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list datasets",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get datasets",
		Data:       items,
		Pagination: response.Paginate(page, pageSize, total),
	})
}

func (h *DatasetHandler) Get(c *fiber.Ctx) error {
	d, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return lookupError(c, "dataset", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get dataset",
		Data:    d,
	})
}

func (h *DatasetHandler) Update(c *fiber.Ctx) error {
	var req datasetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	d, err := h.uc.Update(c.Params("id"), req.Name, req.Description)
	if err != nil {
		return lookupError(c, "dataset", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update dataset",
		Data:    d,
	})
}

func (h *DatasetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete dataset",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete dataset",
	})
}

// UploadVersion accepts multipart form data: a "file" part (.csv or .xlsx,
// max 10MB) and an optional "mapping" part with the column mapping JSON.
func (h *DatasetHandler) UploadVersion(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	if file.Size > maxUploadSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file size is too large (max 10MB)",
		})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("unsupported file type %s", ext),
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot open uploaded file",
		}, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	v, err := h.uc.UploadVersion(c.Context(), c.Params("id"), file.Filename, content, c.FormValue("mapping"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to upload dataset version",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload dataset version",
		Data:    v,
	})
}

func (h *DatasetHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.uc.ListVersions(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list dataset versions",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get dataset versions",
		Data:    versions,
	})
}

func (h *DatasetHandler) UpdateMapping(c *fiber.Ctx) error {
	var req struct {
		Mapping json.RawMessage `json:"mapping"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	v, err := h.uc.UpdateMapping(c.Context(), c.Params("id"), c.Params("versionId"), string(req.Mapping))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to update mapping",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update mapping",
		Data:    v,
	})
}

func (h *DatasetHandler) Preview(c *fiber.Ctx) error {
	rows := c.QueryInt("rows", 20)
	table, err := h.uc.Preview(c.Context(), c.Params("id"), c.Params("versionId"), rows)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to preview dataset version",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success preview dataset version",
		Data:    table,
	})
}

func (h *DatasetHandler) DownloadURL(c *fiber.Ctx) error {
	url, err := h.uc.DownloadURL(c.Context(), c.Params("id"), c.Params("versionId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create download url",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success create download url",
		Data:    fiber.Map{"url": url},
	})
}
