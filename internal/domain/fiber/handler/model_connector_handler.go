package handler

import (
	"encoding/json"

	"github.com/ardelias/judgeboard/internal/response"
	"github.com/ardelias/judgeboard/internal/usecase"
	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ModelConnectorHandler struct {
	uc *usecase.ModelConnectorUsecase
}

func NewModelConnectorHandler(uc *usecase.ModelConnectorUsecase) *ModelConnectorHandler {
	return &ModelConnectorHandler{uc: uc}
}

func (h *ModelConnectorHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/model-connectors", h.Create)
	app.Get("/model-connectors", h.List)
	app.Get("/model-connectors/:id", h.Get)
	app.Put("/model-connectors/:id", h.Update)
	app.Delete("/model-connectors/:id", h.Delete)
}

type modelConnectorRequest struct {
	Name     string          `json:"name"`
	Provider string          `json:"provider"`
	Config   json.RawMessage `json:"config"`
}

func (h *ModelConnectorHandler) Create(c *fiber.Ctx) error {
	var req modelConnectorRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	conn, err := h.uc.Create(req.Name, req.Provider, string(req.Config))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to create model connector",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create model connector",
		Data:    conn,
	})
}

func (h *ModelConnectorHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list model connectors",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get model connectors",
		Data:       items,
		Pagination: response.Paginate(page, pageSize, total),
	})
}

func (h *ModelConnectorHandler) Get(c *fiber.Ctx) error {
	conn, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return lookupError(c, "model connector", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get model connector",
		Data:    conn,
	})
}

func (h *ModelConnectorHandler) Update(c *fiber.Ctx) error {
	var req modelConnectorRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	conn, err := h.uc.Update(c.Params("id"), req.Name, req.Provider, string(req.Config))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "failed to update model connector",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update model connector",
		Data:    conn,
	})
}

func (h *ModelConnectorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to delete model connector",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete model connector",
	})
}
