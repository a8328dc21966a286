package domain

import (
	"errors"
)

// FallbackCategory receives the recipes of a deleted category so no
// recipe is ever left pointing at a name that no longer exists.
const FallbackCategory = "Autre"

var DefaultCategories = []string{
	"Pâtisserie", "Viennoiserie", "Confiserie", "Dessert Glacé",
	"Gâteau", "Tarte", "Boisson", "Autre",
}

var (
	MessageSuccessGetCategories  = "success get categories"
	MessageSuccessAddCategory    = "category added successfully"
	MessageSuccessRenameCategory = "category renamed successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"
	MessageSuccessInitCategories = "default categories initialized"

	MessageFailedGetCategories  = "failed to get categories"
	MessageFailedAddCategory    = "failed to add category"
	MessageFailedRenameCategory = "failed to rename category"
	MessageFailedDeleteCategory = "failed to delete category"
	MessageFailedInitCategories = "failed to initialize categories"

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNameInvalid = errors.New("category name is invalid")
)

type (
	AddCategoryRequest struct {
		Name string `json:"name" validate:"required,max=100"`
	}

	RenameCategoryRequest struct {
		NewName string `json:"new_name" validate:"required,max=100"`
	}

	CategoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// CategoryCascadeResponse reports how many recipes a rename or
	// delete dragged along.
	CategoryCascadeResponse struct {
		Category        CategoryResponse `json:"category"`
		AffectedRecipes int64            `json:"affected_recipes"`
	}

	InitCategoriesResponse struct {
		Added int `json:"added"`
	}
)
