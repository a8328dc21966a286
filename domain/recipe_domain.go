package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	RecipePageSize  = 9
	DefaultServings = 4

	// CategoryFavorites is a sentinel category value that switches the
	// listing filter to favorite recipes instead of a category match.
	CategoryFavorites = "favorites"

	SortDateDesc      = "date_desc"
	SortDateAsc       = "date_asc"
	SortAlphaAsc      = "alpha_asc"
	SortTimeAsc       = "time_asc"
	SortDifficultyAsc = "difficulty_asc"

	DifficultyEasy   = "Facile"
	DifficultyMedium = "Moyen"
	DifficultyHard   = "Difficile"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessRateRecipe      = "recipe rated successfully"
	MessageSuccessToggleFavorite  = "recipe favorite updated successfully"
	MessageSuccessShareRecipe     = "recipe shared successfully"
	MessageSuccessRevokeShare     = "recipe share revoked successfully"
	MessageSuccessGetHistory      = "success get cooking history"
	MessageSuccessMarkAsCooked    = "recipe marked as cooked successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedRateRecipe      = "failed to rate recipe"
	MessageFailedToggleFavorite  = "failed to update recipe favorite"
	MessageFailedShareRecipe     = "failed to share recipe"
	MessageFailedRevokeShare     = "failed to revoke recipe share"
	MessageFailedGetHistory      = "failed to get cooking history"
	MessageFailedMarkAsCooked    = "failed to mark recipe as cooked"
	MessageFailedGetDocument     = "failed to build recipe document"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeTitleRequired      = errors.New("recipe title is required")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrShareTokenNotFound       = errors.New("shared recipe not found")
)

type (
	// RecipeQuery carries the listing filters. MaxTime is a pointer so a
	// zero bound supplied by the caller stays distinguishable from an
	// absent one.
	RecipeQuery struct {
		Page       int
		Category   string
		Search     string
		Difficulty string
		MaxTime    *int
		Tag        string
		Sort       string
	}

	// SaveRecipeRequest holds raw form values; numeric coercion happens
	// in the service so create, edit and import share one policy.
	SaveRecipeRequest struct {
		Title       string `validate:"required"`
		Description string
		Tips        string
		Source      string
		Difficulty  string
		Category    string
		PrepTime    string
		CookTime    string
		Servings    string
		TotalCarbs  string
		Tags        string

		IngredientNames      []string
		IngredientQuantities []string
		IngredientUnits      []string
		StepInstructions     []string
		StepDurations        []string

		Image *multipart.FileHeader
	}

	IngredientResponse struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity"`
		Unit     string   `json:"unit"`
	}

	StepResponse struct {
		Order       int    `json:"order"`
		Instruction string `json:"instruction"`
		Duration    *int   `json:"duration"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTime        int       `json:"prep_time"`
		CookTime        int       `json:"cook_time"`
		TotalTime       int       `json:"total_time"`
		Servings        int       `json:"servings"`
		Difficulty      string    `json:"difficulty"`
		Category        string    `json:"category"`
		TotalCarbs      float64   `json:"total_carbs"`
		CarbsPerServing float64   `json:"carbs_per_serving"`
		Rating          *int      `json:"rating"`
		IsFavorite      bool      `json:"is_favorite"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Tips        string               `json:"tips"`
		Source      string               `json:"source"`
		Ingredients []IngredientResponse `json:"ingredients"`
		Steps       []StepResponse       `json:"steps"`
		Tags        []string             `json:"tags"`
	}

	Pagination struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeResponse `json:"recipes"`
		Pagination Pagination       `json:"pagination"`
	}

	RateRecipeRequest struct {
		Rating int `json:"rating" validate:"required,min=1,max=5"`
	}

	ShareRecipeResponse struct {
		ShareToken string `json:"share_token"`
		ShareURL   string `json:"share_url"`
	}

	CookingHistoryEntry struct {
		RecipeID string    `json:"recipe_id"`
		Title    string    `json:"title"`
		CookedAt time.Time `json:"cooked_at"`
	}

	CookingHistoryResponse struct {
		Entries []CookingHistoryEntry `json:"entries"`
		Total   int64                 `json:"total"`
	}

	RecipeDocument struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}
)
