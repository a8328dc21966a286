package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
	"Sweet-Recipes-Backend/pkg/recipe"
)

type (
	TransferService interface {
		ExportRecipes(ctx context.Context, userID string) (domain.ExportResponse, error)
		ImportRecipes(ctx context.Context, data []byte, userID string) (domain.ImportResponse, error)
	}

	transferService struct {
		recipeRepository recipe.RecipeRepository
	}
)

func NewTransferService(recipeRepository recipe.RecipeRepository) TransferService {
	return &transferService{recipeRepository: recipeRepository}
}

func (s *transferService) ExportRecipes(ctx context.Context, userID string) (domain.ExportResponse, error) {
	recipes, err := s.recipeRepository.GetAllRecipesByUser(ctx, userID)
	if err != nil {
		return domain.ExportResponse{}, err
	}

	exports := make([]domain.RecipeExport, 0, len(recipes))
	for _, r := range recipes {
		exports = append(exports, toExport(r))
	}

	return domain.ExportResponse{
		Filename: fmt.Sprintf("recipes_backup_%s.json", time.Now().Format("20060102")),
		Recipes:  exports,
	}, nil
}

// ImportRecipes inserts every record whose title the user does not have
// yet. Records without a title are skipped and never abort the import;
// the whole batch commits or rolls back as one transaction.
func (s *transferService) ImportRecipes(ctx context.Context, data []byte, userID string) (domain.ImportResponse, error) {
	var records []domain.RecipeExport
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.ImportResponse{}, domain.ErrImportInvalidJSON
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ImportResponse{}, domain.ErrParseUUID
	}

	var res domain.ImportResponse
	err = s.recipeRepository.WithTransaction(ctx, func(txRepo recipe.RecipeRepository) error {
		for _, record := range records {
			title := strings.TrimSpace(record.Title)
			if title == "" {
				res.Skipped++
				continue
			}

			exists, err := txRepo.RecipeTitleExists(ctx, userID, title)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}

			r := &entities.Recipe{
				ID:          uuid.New(),
				UserID:      userUUID,
				Title:       title,
				Description: record.Description,
				Tips:        record.Tips,
				Source:      record.Source,
				ImageURL:    record.ImageURL,
				PrepTime:    clampMin(record.PrepTime, 0),
				CookTime:    clampMin(record.CookTime, 0),
				Servings:    defaultServings(record.Servings),
				Difficulty:  record.Difficulty,
				Category:    record.Category,
				TotalCarbs:  clampCarbs(record.TotalCarbs),
				IsFavorite:  record.IsFavorite,
			}
			if record.Rating != nil && *record.Rating >= 1 && *record.Rating <= 5 {
				r.Rating = record.Rating
			}

			if err := txRepo.CreateAggregate(ctx, r, importIngredients(record), importSteps(record), importTags(record)); err != nil {
				return err
			}
			res.Imported++
		}
		return nil
	})
	if err != nil {
		return domain.ImportResponse{}, err
	}

	return res, nil
}

func importIngredients(record domain.RecipeExport) []entities.Ingredient {
	ingredients := make([]entities.Ingredient, 0, len(record.Ingredients))
	for _, ing := range record.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		unit := strings.TrimSpace(ing.Unit)
		if unit == "" {
			unit = "g"
		}
		ingredients = append(ingredients, entities.Ingredient{
			Name:     name,
			Quantity: ing.Quantity,
			Unit:     unit,
		})
	}
	return ingredients
}

func importSteps(record domain.RecipeExport) []entities.Step {
	steps := make([]entities.Step, 0, len(record.Steps))
	for _, step := range record.Steps {
		instruction := strings.TrimSpace(step.Instruction)
		if instruction == "" {
			continue
		}
		steps = append(steps, entities.Step{
			Order:       len(steps) + 1,
			Instruction: instruction,
			Duration:    step.Duration,
		})
	}
	return steps
}

func importTags(record domain.RecipeExport) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0, len(record.Tags))
	for _, raw := range record.Tags {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

func toExport(r *entities.Recipe) domain.RecipeExport {
	export := domain.RecipeExport{
		ID:              r.ID.String(),
		Title:           r.Title,
		Description:     r.Description,
		Tips:            r.Tips,
		Source:          r.Source,
		ImageURL:        r.ImageURL,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		Category:        r.Category,
		TotalCarbs:      r.TotalCarbs,
		CarbsPerServing: r.CarbsPerServing(),
		Rating:          r.Rating,
		IsFavorite:      r.IsFavorite,
		Ingredients:     make([]domain.IngredientExport, 0, len(r.Ingredients)),
		Steps:           make([]domain.StepExport, 0, len(r.Steps)),
		Tags:            make([]string, 0, len(r.Tags)),
	}

	for _, ing := range r.Ingredients {
		export.Ingredients = append(export.Ingredients, domain.IngredientExport{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for _, step := range r.Steps {
		export.Steps = append(export.Steps, domain.StepExport{
			Order:       step.Order,
			Instruction: step.Instruction,
			Duration:    step.Duration,
		})
	}
	for _, tag := range r.Tags {
		export.Tags = append(export.Tags, tag.Name)
	}

	return export
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func defaultServings(v int) int {
	if v <= 0 {
		return domain.DefaultServings
	}
	return v
}

func clampCarbs(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
