package handler

import (
	"github.com/ardelias/judgeboard/internal/response"
	"github.com/ardelias/judgeboard/internal/usecase"
	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type EvalParameterHandler struct {
	uc *usecase.EvalParameterUsecase
}

func NewEvalParameterHandler(uc *usecase.EvalParameterUsecase) *EvalParameterHandler {
	return &EvalParameterHandler{uc: uc}
}

func (h *EvalParameterHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/eval-parameters", h.Create)
	app.Get("/eval-parameters", h.List)
	app.Get("/eval-parameters/:id", h.Get)
	app.Put("/eval-parameters/:id", h.Update)
	app.Delete("/eval-parameters/:id", h.Delete)
}

type evalParameterRequest struct {
	Name       string   `json:"name"`
	Definition string   `json:"definition"`
	Labels     []string `json:"labels"`
}

func (h *EvalParameterHandler) Create(c *fiber.Ctx) error {
	var req evalParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	p, err := h.uc.Create(req.Name, req.Definition, req.Labels)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create evaluation parameter",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create evaluation parameter",
		Data:    p,
	})
}

func (h *EvalParameterHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list evaluation parameters",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get evaluation parameters",
		Data:       items,
		Pagination: response.Paginate(page, pageSize, total),
	})
}

func (h *EvalParameterHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return lookupError(c, "evaluation parameter", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation parameter",
		Data:    p,
	})
}

func (h *EvalParameterHandler) Update(c *fiber.Ctx) error {
	var req evalParameterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	p, err := h.uc.Update(c.Params("id"), req.Name, req.Definition, req.Labels)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to update evaluation parameter",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update evaluation parameter",
		Data:    p,
	})
}

func (h *EvalParameterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete evaluation parameter",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete evaluation parameter",
	})
}
