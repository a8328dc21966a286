package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/api/presenters"
	"Sweet-Recipes-Backend/pkg/shopping"
)

type (
	ShoppingHandler interface {
		BuildShoppingList(c *fiber.Ctx) error
		EmailShoppingList(c *fiber.Ctx) error
	}

	shoppingHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingHandler {
	return &shoppingHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingHandler) BuildShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.ShoppingListRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShoppingList, err)
	}

	res, err := h.shoppingService.BuildShoppingList(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForShoppingError(err), domain.MessageFailedShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShoppingList)
}

func (h *shoppingHandler) EmailShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.ShoppingListRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailList, err)
	}

	if err := h.shoppingService.EmailShoppingList(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusForShoppingError(err), domain.MessageFailedEmailList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailList)
}

func statusForShoppingError(err error) int {
	if errors.Is(err, domain.ErrNothingToConsolidate) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}
