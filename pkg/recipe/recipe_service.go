package recipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
	"Sweet-Recipes-Backend/internal/utils"
	"Sweet-Recipes-Backend/internal/utils/storage"
)

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, q domain.RecipeQuery, userID string) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error)
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error

		RateRecipe(ctx context.Context, recipeID string, rating int, userID string) (*int, error)
		ToggleFavorite(ctx context.Context, recipeID string, userID string) (bool, error)

		ShareRecipe(ctx context.Context, recipeID string, userID string) (domain.ShareRecipeResponse, error)
		RevokeShare(ctx context.Context, recipeID string, userID string) error
		GetSharedRecipe(ctx context.Context, token string) (domain.RecipeDetailResponse, error)

		MarkAsCooked(ctx context.Context, recipeID string, userID string) error
		GetCookingHistory(ctx context.Context, page, limit int, userID string) (domain.CookingHistoryResponse, error)

		BuildDocument(ctx context.Context, recipeID string, userID string) (domain.RecipeDocument, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
		disk             storage.LocalDisk
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3, disk storage.LocalDisk) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
		disk:             disk,
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, q domain.RecipeQuery, userID string) (domain.RecipeListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	recipes, count, err := s.recipeRepository.QueryRecipes(ctx, userID, q)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		responses = append(responses, toRecipeResponse(r))
	}

	totalPages := (count + domain.RecipePageSize - 1) / domain.RecipePageSize
	return domain.RecipeListResponse{
		Recipes: responses,
		Pagination: domain.Pagination{
			Page:       q.Page,
			PageSize:   domain.RecipePageSize,
			Total:      count,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeTitleRequired
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:     uuid.New(),
		UserID: userUUID,
	}
	applyScalars(recipe, req)

	if req.Image != nil {
		imageURL, err := s.saveImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	ingredients := buildIngredients(req)
	steps := buildSteps(req)
	tagNames := parseTags(req.Tags)

	if err := s.recipeRepository.CreateAggregate(ctx, recipe, ingredients, steps, tagNames); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	saved, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(saved), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeTitleRequired
	}

	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	updated := &entities.Recipe{
		ID:         recipe.ID,
		UserID:     recipe.UserID,
		ImageURL:   recipe.ImageURL,
		Rating:     recipe.Rating,
		IsFavorite: recipe.IsFavorite,
		ShareToken: recipe.ShareToken,
		Timestamp:  recipe.Timestamp,
	}
	applyScalars(updated, req)

	oldImage := recipe.ImageURL
	if req.Image != nil {
		imageURL, err := s.saveImage(recipe.ID, req.Image)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		updated.ImageURL = imageURL
	}

	ingredients := buildIngredients(req)
	steps := buildSteps(req)
	tagNames := parseTags(req.Tags)

	if err := s.recipeRepository.UpdateAggregate(ctx, updated, ingredients, steps, tagNames); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	// The replaced image is only removed once the transaction committed,
	// so a rollback never loses the previous photo.
	if req.Image != nil && oldImage != "" && oldImage != updated.ImageURL {
		s.deleteLocalImage(oldImage)
	}

	saved, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(saved), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe); err != nil {
		return err
	}

	s.deleteLocalImage(recipe.ImageURL)
	return nil
}

// RateRecipe applies the toggle law: submitting the rating a recipe
// already holds clears it.
func (s *recipeService) RateRecipe(ctx context.Context, recipeID string, rating int, userID string) (*int, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	if recipe.Rating != nil && *recipe.Rating == rating {
		recipe.Rating = nil
	} else {
		recipe.Rating = &rating
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe.Rating, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID string, userID string) (bool, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return false, err
	}

	recipe.IsFavorite = !recipe.IsFavorite
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return false, err
	}
	return recipe.IsFavorite, nil
}

// ShareRecipe returns the active token unchanged when one exists;
// revoking and regenerating is the only way to rotate it.
func (s *recipeService) ShareRecipe(ctx context.Context, recipeID string, userID string) (domain.ShareRecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.ShareRecipeResponse{}, err
	}

	if recipe.ShareToken == nil {
		token := strings.ReplaceAll(uuid.NewString(), "-", "")
		recipe.ShareToken = &token
		if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
			return domain.ShareRecipeResponse{}, err
		}
	}

	return domain.ShareRecipeResponse{
		ShareToken: *recipe.ShareToken,
		ShareURL:   fmt.Sprintf("%s/api/v1/shared/%s", utils.GetConfig("APP_URL"), *recipe.ShareToken),
	}, nil
}

func (s *recipeService) RevokeShare(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	recipe.ShareToken = nil
	return s.recipeRepository.UpdateRecipe(ctx, recipe)
}

func (s *recipeService) GetSharedRecipe(ctx context.Context, token string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrShareTokenNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) MarkAsCooked(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	return s.recipeRepository.AddCookingHistory(ctx, recipe.UserID, recipe.ID)
}

func (s *recipeService) GetCookingHistory(ctx context.Context, page, limit int, userID string) (domain.CookingHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	entries, count, err := s.recipeRepository.GetCookingHistory(ctx, userID, page, limit)
	if err != nil {
		return domain.CookingHistoryResponse{}, err
	}

	history := make([]domain.CookingHistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry := domain.CookingHistoryEntry{
			RecipeID: e.RecipeID.String(),
			CookedAt: e.CookedAt,
		}
		if e.Recipe != nil {
			entry.Title = e.Recipe.Title
		}
		history = append(history, entry)
	}

	return domain.CookingHistoryResponse{Entries: history, Total: count}, nil
}

var nonWord = regexp.MustCompile(`\W+`)

// DocumentFilename turns a recipe title into a safe download filename.
func DocumentFilename(title string) string {
	name := nonWord.ReplaceAllString(title, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "recette"
	}
	return name
}

// BuildDocument renders the printable plain-text version of a recipe.
// Converting it to PDF is left to the caller.
func (s *recipeService) BuildDocument(ctx context.Context, recipeID string, userID string) (domain.RecipeDocument, error) {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDocument{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", recipe.Title)
	if recipe.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", recipe.Description)
	}
	fmt.Fprintf(&b, "\nPréparation : %d min | Cuisson : %d min | Portions : %d\n",
		recipe.PrepTime, recipe.CookTime, recipe.Servings)
	if recipe.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulté : %s\n", recipe.Difficulty)
	}

	b.WriteString("\nIngrédients :\n")
	for _, ing := range recipe.Ingredients {
		if ing.Quantity != nil {
			fmt.Fprintf(&b, "- %g %s %s\n", *ing.Quantity, ing.Unit, ing.Name)
		} else {
			fmt.Fprintf(&b, "- %s\n", ing.Name)
		}
	}

	b.WriteString("\nÉtapes :\n")
	for _, step := range recipe.Steps {
		fmt.Fprintf(&b, "%d. %s\n", step.Order, step.Instruction)
	}

	if recipe.Tips != "" {
		fmt.Fprintf(&b, "\nAstuces :\n%s\n", recipe.Tips)
	}

	return domain.RecipeDocument{
		Filename: DocumentFilename(recipe.Title) + ".txt",
		Content:  b.String(),
	}, nil
}

// getOwnedRecipe loads a recipe and rejects access by anyone but its
// owner before any mutation can happen.
func (s *recipeService) getOwnedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) saveImage(recipeID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if s.s3 != nil && s.s3.Configured() {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("recipe-%s", recipeID.String()),
			file,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return "", err
		}
		return s.s3.GetPublicLinkKey(objectKey), nil
	}
	return s.disk.SaveFile(file, storage.AllowImage...)
}

// deleteLocalImage is best effort: remote references stay untouched and
// a failed removal is logged, never surfaced.
func (s *recipeService) deleteLocalImage(ref string) {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return
	}
	if err := s.disk.Remove(ref); err != nil {
		log.Printf("error removing image %s: %v", ref, err)
	}
}

func applyScalars(recipe *entities.Recipe, req domain.SaveRecipeRequest) {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = req.Description
	recipe.Tips = req.Tips
	recipe.Source = req.Source
	recipe.Difficulty = req.Difficulty
	recipe.Category = req.Category
	recipe.PrepTime = parseMinutes(req.PrepTime)
	recipe.CookTime = parseMinutes(req.CookTime)
	recipe.Servings = parseServings(req.Servings)
	recipe.TotalCarbs = parseCarbs(req.TotalCarbs)
}

// parseServings coerces to an integer >= 1, falling back to the default
// portion count on bad input.
func parseServings(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return domain.DefaultServings
	}
	return v
}

func parseMinutes(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseCarbs(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseQuantity(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDuration(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parseTags splits the comma-separated tag field, trims each name and
// drops duplicates case-sensitively, preserving input order.
func parseTags(raw string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// buildIngredients aligns the repeated form fields by index, skipping
// rows with a blank name.
func buildIngredients(req domain.SaveRecipeRequest) []entities.Ingredient {
	ingredients := make([]entities.Ingredient, 0, len(req.IngredientNames))
	for i, rawName := range req.IngredientNames {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}

		var quantity *float64
		if i < len(req.IngredientQuantities) {
			quantity = parseQuantity(req.IngredientQuantities[i])
		}

		unit := "g"
		if i < len(req.IngredientUnits) && strings.TrimSpace(req.IngredientUnits[i]) != "" {
			unit = strings.TrimSpace(req.IngredientUnits[i])
		}

		ingredients = append(ingredients, entities.Ingredient{
			Name:     name,
			Quantity: quantity,
			Unit:     unit,
		})
	}
	return ingredients
}

// buildSteps renumbers steps 1..N from their position in the input,
// regardless of any order the client supplied.
func buildSteps(req domain.SaveRecipeRequest) []entities.Step {
	steps := make([]entities.Step, 0, len(req.StepInstructions))
	for i, rawInstruction := range req.StepInstructions {
		instruction := strings.TrimSpace(rawInstruction)
		if instruction == "" {
			continue
		}

		var duration *int
		if i < len(req.StepDurations) {
			duration = parseDuration(req.StepDurations[i])
		}

		steps = append(steps, entities.Step{
			Order:       len(steps) + 1,
			Instruction: instruction,
			Duration:    duration,
		})
	}
	return steps
}

func toRecipeResponse(r *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:              r.ID.String(),
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime(),
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		Category:        r.Category,
		TotalCarbs:      r.TotalCarbs,
		CarbsPerServing: r.CarbsPerServing(),
		Rating:          r.Rating,
		IsFavorite:      r.IsFavorite,
		CreatedAt:       r.CreatedAt,
	}
}

func toRecipeDetail(r *entities.Recipe) domain.RecipeDetailResponse {
	detail := domain.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(r),
		Tips:           r.Tips,
		Source:         r.Source,
		Ingredients:    make([]domain.IngredientResponse, 0, len(r.Ingredients)),
		Steps:          make([]domain.StepResponse, 0, len(r.Steps)),
		Tags:           make([]string, 0, len(r.Tags)),
	}

	for _, ing := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.IngredientResponse{
			ID:       ing.ID.String(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for _, step := range r.Steps {
		detail.Steps = append(detail.Steps, domain.StepResponse{
			Order:       step.Order,
			Instruction: step.Instruction,
			Duration:    step.Duration,
		})
	}
	for _, tag := range r.Tags {
		detail.Tags = append(detail.Tags, tag.Name)
	}

	return detail
}
