package handler

import (
	"errors"

	"github.com/ardelias/judgeboard/internal/util"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}

// lookupError maps a gorm not-found onto 404, everything else onto 500.
func lookupError(c *fiber.Ctx, what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: what + " not found",
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "failed to load " + what,
	}, err)
}
