package category

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/entities"
)

type (
	CategoryRepository interface {
		GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		CategoryNameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error)
		CreateCategory(ctx context.Context, category *entities.Category) error

		// RenameCategory updates the category row and every recipe of the
		// same user still holding the old name, in one transaction. It
		// returns the number of recipes carried along.
		RenameCategory(ctx context.Context, category *entities.Category, newName string) (int64, error)

		// DeleteCategory reassigns the user's recipes to the fallback
		// name before removing the row, in one transaction.
		DeleteCategory(ctx context.Context, category *entities.Category, fallback string) (int64, error)
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CategoryNameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) RenameCategory(ctx context.Context, category *entities.Category, newName string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldName := category.Name
		category.Name = newName
		if err := tx.Save(category).Error; err != nil {
			return err
		}

		res := tx.Model(&entities.Recipe{}).
			Where("user_id = ? AND category = ?", category.UserID, oldName).
			Update("category", newName)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, category *entities.Category, fallback string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Recipe{}).
			Where("user_id = ? AND category = ?", category.UserID, category.Name).
			Update("category", fallback)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected

		return tx.Delete(category).Error
	})
	return affected, err
}
