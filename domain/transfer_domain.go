package domain

import (
	"errors"
)

var (
	MessageSuccessExport = "recipes exported successfully"
	MessageSuccessImport = "recipes imported successfully"

	MessageFailedExport = "failed to export recipes"
	MessageFailedImport = "failed to import recipes"

	ErrImportInvalidJSON = errors.New("import file is not a valid recipe list")
)

type (
	IngredientExport struct {
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity"`
		Unit     string   `json:"unit"`
	}

	StepExport struct {
		Order       int    `json:"order"`
		Instruction string `json:"instruction"`
		Duration    *int   `json:"duration"`
	}

	// RecipeExport is the bulk interchange shape. Import accepts the
	// same document export produces.
	RecipeExport struct {
		ID              string             `json:"id,omitempty"`
		Title           string             `json:"title"`
		Description     string             `json:"description"`
		Tips            string             `json:"tips"`
		Source          string             `json:"source"`
		ImageURL        string             `json:"image_url,omitempty"`
		PrepTime        int                `json:"prep_time"`
		CookTime        int                `json:"cook_time"`
		Servings        int                `json:"servings"`
		Difficulty      string             `json:"difficulty"`
		Category        string             `json:"category"`
		TotalCarbs      float64            `json:"total_carbs"`
		CarbsPerServing float64            `json:"carbs_per_serving"`
		Rating          *int               `json:"rating"`
		IsFavorite      bool               `json:"is_favorite"`
		Ingredients     []IngredientExport `json:"ingredients"`
		Steps           []StepExport       `json:"steps"`
		Tags            []string           `json:"tags"`
	}

	ImportResponse struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}

	ExportResponse struct {
		Filename string         `json:"filename"`
		Recipes  []RecipeExport `json:"recipes"`
	}
)
