package handler

import (
	"encoding/json"

	"github.com/ardelias/judgeboard/internal/dto"
	"github.com/ardelias/judgeboard/internal/response"
	"github.com/ardelias/judgeboard/internal/usecase"
	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RunHandler struct {
	uc *usecase.RunUsecase
}

func NewRunHandler(uc *usecase.RunUsecase) *RunHandler {
	return &RunHandler{uc: uc}
}

func (h *RunHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/runs", h.Create)
	app.Get("/runs", h.List)
	app.Get("/runs/:id", h.Get)
	app.Delete("/runs/:id", h.Delete)
	app.Post("/runs/:id/preview", h.Preview)
	app.Post("/runs/:id/start", h.Start)
	app.Get("/runs/:id/metrics", h.Metrics)
	app.Get("/runs/:id/accuracy", h.Accuracy)
	app.Post("/runs/:id/analyses", h.SaveAnalysis)
	app.Get("/runs/:id/analyses", h.ListAnalyses)
	app.Delete("/runs/:id/analyses/:analysisId", h.DeleteAnalysis)
	app.Get("/runs/:id/analyses/:analysisId/rows", h.AnalysisRows)
}

func (h *RunHandler) Create(c *fiber.Ctx) error {
	var in usecase.CreateRunInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	run, err := h.uc.Create(in)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create evaluation run",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create evaluation run",
		Data:    dto.NewEvaluationRunDTO(run),
	})
}

func (h *RunHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	runs, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluation runs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get evaluation runs",
		Data:       dto.NewEvaluationRunDTOs(runs),
		Pagination: response.Paginate(page, pageSize, total),
	})
}

func (h *RunHandler) Get(c *fiber.Ctx) error {
	run, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return lookupError(c, "evaluation run", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation run",
		Data:    dto.NewEvaluationRunDTO(run),
	})
}

func (h *RunHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete evaluation run",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete evaluation run",
	})
}

func (h *RunHandler) Preview(c *fiber.Ctx) error {
	_, table, err := h.uc.Preview(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to preview evaluation run",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success preview evaluation run",
		Data:    table,
	})
}

func (h *RunHandler) Start(c *fiber.Ctx) error {
	run, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to start evaluation run",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success start evaluation run",
		Data:    dto.NewEvaluationRunDTO(run),
	})
}

func (h *RunHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.uc.Metrics(c.Params("id"))
	if err != nil {
		return lookupError(c, "evaluation run", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get run metrics",
		Data:    metrics,
	})
}

func (h *RunHandler) Accuracy(c *fiber.Ctx) error {
	acc, err := h.uc.Accuracy(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to compute accuracy",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get run accuracy",
		Data:    acc,
	})
}

func (h *RunHandler) SaveAnalysis(c *fiber.Ctx) error {
	var req struct {
		Name   string          `json:"name"`
		Filter json.RawMessage `json:"filter"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	a, err := h.uc.SaveAnalysis(c.Params("id"), req.Name, string(req.Filter))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to save analysis",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success save analysis",
		Data:    a,
	})
}

func (h *RunHandler) ListAnalyses(c *fiber.Ctx) error {
	analyses, err := h.uc.ListAnalyses(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list analyses",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get analyses",
		Data:    analyses,
	})
}

func (h *RunHandler) DeleteAnalysis(c *fiber.Ctx) error {
	if err := h.uc.DeleteAnalysis(c.Params("id"), c.Params("analysisId")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete analysis",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete analysis",
	})
}

func (h *RunHandler) AnalysisRows(c *fiber.Ctx) error {
	rows, err := h.uc.ApplyAnalysis(c.Params("id"), c.Params("analysisId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to apply analysis",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get analysis rows",
		Data:    rows,
	})
}
