package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/api/presenters"
	"Sweet-Recipes-Backend/pkg/category"
)

type (
	CategoryHandler interface {
		GetCategories(c *fiber.Ctx) error
		AddCategory(c *fiber.Ctx) error
		RenameCategory(c *fiber.Ctx) error
		DeleteCategory(c *fiber.Ctx) error
		InitDefaultCategories(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
		validator       *validator.Validate
	}
)

func NewCategoryHandler(categoryService category.CategoryService, validator *validator.Validate) CategoryHandler {
	return &categoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

func (h *categoryHandler) GetCategories(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res := h.categoryService.ListCategories(c.Context(), userID)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *categoryHandler) AddCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCategory, err)
	}

	res, err := h.categoryService.AddCategory(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForCategoryError(err), domain.MessageFailedAddCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddCategory)
}

func (h *categoryHandler) RenameCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	categoryID := c.Params("id")

	req := new(domain.RenameCategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRenameCategory, err)
	}

	res, err := h.categoryService.RenameCategory(c.Context(), categoryID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForCategoryError(err), domain.MessageFailedRenameCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRenameCategory)
}

func (h *categoryHandler) DeleteCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	categoryID := c.Params("id")

	res, err := h.categoryService.DeleteCategory(c.Context(), categoryID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForCategoryError(err), domain.MessageFailedDeleteCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteCategory)
}

func (h *categoryHandler) InitDefaultCategories(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.categoryService.InitDefaultCategories(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitCategories, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessInitCategories)
}

func statusForCategoryError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCategoryExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
