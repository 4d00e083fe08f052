package handler

import (
	"github.com/ardelias/judgeboard/internal/response"
	"github.com/ardelias/judgeboard/internal/usecase"
	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type PromptTemplateHandler struct {
	uc *usecase.PromptTemplateUsecase
}

func NewPromptTemplateHandler(uc *usecase.PromptTemplateUsecase) *PromptTemplateHandler {
	return &PromptTemplateHandler{uc: uc}
}

func (h *PromptTemplateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/prompt-templates", h.Create)
	app.Get("/prompt-templates", h.List)
	app.Get("/prompt-templates/:id", h.Get)
	app.Put("/prompt-templates/:id", h.Update)
	app.Delete("/prompt-templates/:id", h.Delete)
	app.Post("/prompt-templates/:id/versions", h.AddVersion)
	app.Get("/prompt-templates/:id/versions", h.ListVersions)
	app.Put("/prompt-templates/:id/current-version", h.SetCurrentVersion)
}

type promptTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PromptTemplateHandler) Create(c *fiber.Ctx) error {
	var req promptTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	t, err := h.uc.Create(req.Name, req.Description)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create prompt template",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create prompt template",
		Data:    t,
	})
}

func (h *PromptTemplateHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list prompt templates",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get prompt templates",
		Data:       items,
		Pagination: response.Paginate(page, pageSize, total),
	})
}

func (h *PromptTemplateHandler) Get(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return lookupError(c, "prompt template", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get prompt template",
		Data:    t,
	})
}

func (h *PromptTemplateHandler) Update(c *fiber.Ctx) error {
	var req promptTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	t, err := h.uc.Update(c.Params("id"), req.Name, req.Description)
	if err != nil {
		return lookupError(c, "prompt template", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update prompt template",
		Data:    t,
	})
}

func (h *PromptTemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete prompt template",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete prompt template",
	})
}

func (h *PromptTemplateHandler) AddVersion(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		Note    string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	v, err := h.uc.AddVersion(c.Params("id"), req.Content, req.Note)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create prompt version",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create prompt version",
		Data:    v,
	})
}

func (h *PromptTemplateHandler) ListVersions(c *fiber.Ctx) error {
	versions, err := h.uc.ListVersions(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list prompt versions",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get prompt versions",
		Data:    versions,
	})
}

func (h *PromptTemplateHandler) SetCurrentVersion(c *fiber.Ctx) error {
	var req struct {
		VersionID string `json:"version_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	t, err := h.uc.SetCurrentVersion(c.Params("id"), req.VersionID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to set current version",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success set current version",
		Data:    t,
	})
}
