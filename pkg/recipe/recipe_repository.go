package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
)

// difficultyOrder ranks Facile < Moyen < Difficile, anything else last.
const difficultyOrder = "CASE recipes.difficulty " +
	"WHEN 'Facile' THEN 1 WHEN 'Moyen' THEN 2 WHEN 'Difficile' THEN 3 ELSE 4 END"

const totalTimeExpr = "COALESCE(recipes.prep_time, 0) + COALESCE(recipes.cook_time, 0)"

type (
	RecipeRepository interface {
		QueryRecipes(ctx context.Context, userID string, q domain.RecipeQuery) ([]*entities.Recipe, int64, error)
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByShareToken(ctx context.Context, token string) (*entities.Recipe, error)
		GetRecipesByIDs(ctx context.Context, userID string, ids []string) ([]*entities.Recipe, error)
		GetAllRecipesByUser(ctx context.Context, userID string) ([]*entities.Recipe, error)
		RecipeTitleExists(ctx context.Context, userID string, title string) (bool, error)

		CreateAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tagNames []string) error
		UpdateAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tagNames []string) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error

		AddCookingHistory(ctx context.Context, userID, recipeID uuid.UUID) error
		GetCookingHistory(ctx context.Context, userID string, page, limit int) ([]*entities.CookingHistory, int64, error)

		WithTransaction(ctx context.Context, fn func(txRepo RecipeRepository) error) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(txRepo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) QueryRecipes(ctx context.Context, userID string, q domain.RecipeQuery) ([]*entities.Recipe, int64, error) {
	db := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("recipes.user_id = ?", userID)

	switch {
	case q.Category == domain.CategoryFavorites:
		db = db.Where("recipes.is_favorite = ?", true)
	case q.Category != "":
		db = db.Where("recipes.category = ?", q.Category)
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("LOWER(tags.name) LIKE ?", pattern)
		db = db.Where("LOWER(recipes.title) LIKE ? OR recipes.id IN (?)", pattern, tagged)
	}

	if q.Difficulty != "" {
		db = db.Where("recipes.difficulty = ?", q.Difficulty)
	}

	// MaxTime of zero is a legitimate bound; only a nil pointer means
	// the filter was not supplied.
	if q.MaxTime != nil {
		db = db.Where(totalTimeExpr+" <= ?", *q.MaxTime)
	}

	if q.Tag != "" {
		byTag := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.name = ? AND tags.user_id = ?", q.Tag, userID)
		db = db.Where("recipes.id IN (?)", byTag)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * domain.RecipePageSize

	var recipes []*entities.Recipe
	if err := db.
		Order(sortExpression(q.Sort)).
		Offset(offset).
		Limit(domain.RecipePageSize).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func sortExpression(sort string) string {
	switch sort {
	case domain.SortDateAsc:
		return "recipes.created_at ASC"
	case domain.SortAlphaAsc:
		return "LOWER(recipes.title) ASC"
	case domain.SortTimeAsc:
		return totalTimeExpr + " ASC"
	case domain.SortDifficultyAsc:
		return difficultyOrder + " ASC, LOWER(recipes.title) ASC"
	default:
		return "recipes.created_at DESC"
	}
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Preload("Tags").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByShareToken(ctx context.Context, token string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Preload("Tags").
		Where("share_token = ?", token).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByIDs(ctx context.Context, userID string, ids []string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetAllRecipesByUser(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order ASC") }).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) RecipeTitleExists(ctx context.Context, userID string, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ? AND title = ?", userID, title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return saveChildren(tx, recipe, ingredients, steps, tagNames)
	})
}

func (r *recipeRepository) UpdateAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		return saveChildren(tx, recipe, ingredients, steps, tagNames)
	})
}

// saveChildren fully replaces the recipe's ingredients, steps and tag
// links. Edits never merge with the previous rows.
func saveChildren(tx *gorm.DB, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tagNames []string) error {
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Step{}).Error; err != nil {
		return err
	}

	for i := range ingredients {
		ingredients[i].ID = uuid.New()
		ingredients[i].RecipeID = recipe.ID
	}
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
	}

	for i := range steps {
		steps[i].ID = uuid.New()
		steps[i].RecipeID = recipe.ID
	}
	if len(steps) > 0 {
		if err := tx.Create(&steps).Error; err != nil {
			return err
		}
	}

	tags, err := resolveTags(tx, recipe.UserID, tagNames)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return tx.Model(recipe).Association("Tags").Clear()
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

// resolveTags matches each name against the user's tags, creating rows
// for names the user does not have yet.
func resolveTags(tx *gorm.DB, userID uuid.UUID, names []string) ([]entities.Tag, error) {
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		var tag entities.Tag
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = entities.Tag{ID: uuid.New(), UserID: userID, Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.CookingHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

func (r *recipeRepository) AddCookingHistory(ctx context.Context, userID, recipeID uuid.UUID) error {
	history := entities.CookingHistory{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		CookedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&history).Error
}

func (r *recipeRepository) GetCookingHistory(ctx context.Context, userID string, page, limit int) ([]*entities.CookingHistory, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CookingHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	var entries []*entities.CookingHistory
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("cooked_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, count, nil
}
