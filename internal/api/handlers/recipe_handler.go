package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/api/presenters"
	"Sweet-Recipes-Backend/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		RateRecipe(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		ShareRecipe(c *fiber.Ctx) error
		RevokeShare(c *fiber.Ctx) error
		GetSharedRecipe(c *fiber.Ctx) error
		MarkAsCooked(c *fiber.Ctx) error
		GetCookingHistory(c *fiber.Ctx) error
		DownloadDocument(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	q := domain.RecipeQuery{
		Page:       page,
		Category:   c.Query("category", ""),
		Search:     c.Query("search", ""),
		Difficulty: c.Query("difficulty", ""),
		Tag:        c.Query("tag", ""),
		Sort:       c.Query("sort", domain.SortDateDesc),
	}

	// max_time is presence-sensitive: an explicit 0 is a real bound.
	if raw := c.Query("max_time"); raw != "" {
		if maxTime, err := strconv.Atoi(raw); err == nil && maxTime >= 0 {
			q.MaxTime = &maxTime
		}
	}

	res, err := h.recipeService.ListRecipes(c.Context(), q, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := saveRequestFromForm(c)
	if err := h.validator.Struct(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	req := saveRequestFromForm(c)
	if err := h.validator.Struct(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) RateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	req := new(domain.RateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateRecipe, err)
	}

	rating, err := h.recipeService.RateRecipe(c.Context(), recipeID, req.Rating, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedRateRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"rating": rating}, fiber.StatusOK, domain.MessageSuccessRateRecipe)
}

func (h *recipeHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	favorite, err := h.recipeService.ToggleFavorite(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedToggleFavorite, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"is_favorite": favorite}, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *recipeHandler) ShareRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.ShareRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedShareRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareRecipe)
}

func (h *recipeHandler) RevokeShare(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.RevokeShare(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedRevokeShare, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRevokeShare)
}

// GetSharedRecipe serves the public share link; no authentication.
func (h *recipeHandler) GetSharedRecipe(c *fiber.Ctx) error {
	token := c.Params("token")

	res, err := h.recipeService.GetSharedRecipe(c.Context(), token)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) MarkAsCooked(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.MarkAsCooked(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedMarkAsCooked, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAsCooked)
}

func (h *recipeHandler) GetCookingHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	res, err := h.recipeService.GetCookingHistory(c.Context(), page, limit, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *recipeHandler) DownloadDocument(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	doc, err := h.recipeService.BuildDocument(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForRecipeError(err), domain.MessageFailedGetDocument, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.SendString(doc.Content)
}

func saveRequestFromForm(c *fiber.Ctx) domain.SaveRecipeRequest {
	req := domain.SaveRecipeRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Tips:        c.FormValue("tips"),
		Source:      c.FormValue("source"),
		Difficulty:  c.FormValue("difficulty"),
		Category:    c.FormValue("category"),
		PrepTime:    c.FormValue("prep_time"),
		CookTime:    c.FormValue("cook_time"),
		Servings:    c.FormValue("servings"),
		TotalCarbs:  c.FormValue("total_carbs"),
		Tags:        c.FormValue("tags"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		req.IngredientNames = form.Value["ingredient_name[]"]
		req.IngredientQuantities = form.Value["ingredient_quantity[]"]
		req.IngredientUnits = form.Value["ingredient_unit[]"]
		req.StepInstructions = form.Value["step_instruction[]"]
		req.StepDurations = form.Value["step_duration[]"]
	}

	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	return req
}

func statusForRecipeError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
