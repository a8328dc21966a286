package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/api/presenters"
	"Sweet-Recipes-Backend/pkg/transfer"
)

type (
	TransferHandler interface {
		ExportRecipes(c *fiber.Ctx) error
		ImportRecipes(c *fiber.Ctx) error
	}

	transferHandler struct {
		transferService transfer.TransferService
	}
)

func NewTransferHandler(transferService transfer.TransferService) TransferHandler {
	return &transferHandler{transferService: transferService}
}

// ExportRecipes streams the user's full recipe book as a JSON download.
func (h *transferHandler) ExportRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.transferService.ExportRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExport, err)
	}

	body, err := json.MarshalIndent(res.Recipes, "", "  ")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExport, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Send(body)
}

func (h *transferHandler) ImportRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImport, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImport, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImport, err)
	}

	res, err := h.transferService.ImportRecipes(c.Context(), data, userID)
	if err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrImportInvalidJSON) {
			code = fiber.StatusUnprocessableEntity
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedImport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImport)
}
