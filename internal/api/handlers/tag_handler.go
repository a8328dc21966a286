package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/api/presenters"
	"Sweet-Recipes-Backend/pkg/tag"
)

type (
	TagHandler interface {
		GetTags(c *fiber.Ctx) error
		DeleteTag(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService tag.TagService
	}
)

func NewTagHandler(tagService tag.TagService) TagHandler {
	return &tagHandler{tagService: tagService}
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.tagService.ListTags(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *tagHandler) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	tagID := c.Params("id")

	if err := h.tagService.DeleteTag(c.Context(), tagID, userID); err != nil {
		code := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrTagNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrUserNotAllowed):
			code = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedDeleteTag, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTag)
}
