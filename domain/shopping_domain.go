package domain

import (
	"errors"
)

var (
	MessageSuccessShoppingList = "shopping list generated successfully"
	MessageSuccessEmailList    = "shopping list sent successfully"

	MessageFailedShoppingList = "failed to generate shopping list"
	MessageFailedEmailList    = "failed to send shopping list"

	ErrNothingToConsolidate = errors.New("no recipes to consolidate")
)

type (
	ShoppingListRequest struct {
		RecipeIDs []string `json:"recipe_ids" validate:"required,min=1"`
	}

	// ShoppingItem is one consolidated line. HasQuantity distinguishes
	// "no quantity info at all" from an explicit sum of zero.
	ShoppingItem struct {
		Name        string   `json:"name"`
		Unit        string   `json:"unit"`
		Quantity    float64  `json:"quantity"`
		HasQuantity bool     `json:"has_quantity"`
		Recipes     []string `json:"recipes"`
	}

	ShoppingListResponse struct {
		Items       []ShoppingItem `json:"items"`
		RecipeCount int            `json:"recipe_count"`
	}
)
