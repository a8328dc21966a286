package category

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
)

type (
	CategoryService interface {
		ListCategories(ctx context.Context, userID string) []domain.CategoryResponse
		AddCategory(ctx context.Context, req domain.AddCategoryRequest, userID string) (domain.CategoryResponse, error)
		RenameCategory(ctx context.Context, categoryID string, req domain.RenameCategoryRequest, userID string) (domain.CategoryCascadeResponse, error)
		DeleteCategory(ctx context.Context, categoryID string, userID string) (domain.CategoryCascadeResponse, error)
		InitDefaultCategories(ctx context.Context, userID string) (domain.InitCategoriesResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

// ListCategories feeds the menu dropdown on every page, so a read
// failure degrades to an empty list instead of breaking the request.
func (s *categoryService) ListCategories(ctx context.Context, userID string) []domain.CategoryResponse {
	categories, err := s.categoryRepository.GetCategoriesByUser(ctx, userID)
	if err != nil {
		log.Printf("error loading categories for menu: %v", err)
		return []domain.CategoryResponse{}
	}

	responses := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, domain.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return responses
}

func (s *categoryService) AddCategory(ctx context.Context, req domain.AddCategoryRequest, userID string) (domain.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return domain.CategoryResponse{}, domain.ErrCategoryNameInvalid
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CategoryResponse{}, domain.ErrParseUUID
	}

	exists, err := s.categoryRepository.CategoryNameExists(ctx, userUUID, name)
	if err != nil {
		return domain.CategoryResponse{}, err
	}
	if exists {
		return domain.CategoryResponse{}, domain.ErrCategoryExists
	}

	category := &entities.Category{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   name,
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.CategoryResponse{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *categoryService) RenameCategory(ctx context.Context, categoryID string, req domain.RenameCategoryRequest, userID string) (domain.CategoryCascadeResponse, error) {
	category, err := s.getOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return domain.CategoryCascadeResponse{}, err
	}

	newName := strings.TrimSpace(req.NewName)
	if newName == "" || len(newName) > 100 || newName == category.Name {
		return domain.CategoryCascadeResponse{}, domain.ErrCategoryNameInvalid
	}

	exists, err := s.categoryRepository.CategoryNameExists(ctx, category.UserID, newName)
	if err != nil {
		return domain.CategoryCascadeResponse{}, err
	}
	if exists {
		return domain.CategoryCascadeResponse{}, domain.ErrCategoryExists
	}

	affected, err := s.categoryRepository.RenameCategory(ctx, category, newName)
	if err != nil {
		return domain.CategoryCascadeResponse{}, err
	}

	return domain.CategoryCascadeResponse{
		Category:        domain.CategoryResponse{ID: category.ID.String(), Name: newName},
		AffectedRecipes: affected,
	}, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, userID string) (domain.CategoryCascadeResponse, error) {
	category, err := s.getOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return domain.CategoryCascadeResponse{}, err
	}

	affected, err := s.categoryRepository.DeleteCategory(ctx, category, domain.FallbackCategory)
	if err != nil {
		return domain.CategoryCascadeResponse{}, err
	}

	return domain.CategoryCascadeResponse{
		Category:        domain.CategoryResponse{ID: category.ID.String(), Name: category.Name},
		AffectedRecipes: affected,
	}, nil
}

func (s *categoryService) InitDefaultCategories(ctx context.Context, userID string) (domain.InitCategoriesResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InitCategoriesResponse{}, domain.ErrParseUUID
	}

	added := 0
	for _, name := range domain.DefaultCategories {
		exists, err := s.categoryRepository.CategoryNameExists(ctx, userUUID, name)
		if err != nil {
			return domain.InitCategoriesResponse{}, err
		}
		if exists {
			continue
		}
		category := &entities.Category{ID: uuid.New(), UserID: userUUID, Name: name}
		if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
			return domain.InitCategoriesResponse{}, err
		}
		added++
	}

	return domain.InitCategoriesResponse{Added: added}, nil
}

func (s *categoryService) getOwnedCategory(ctx context.Context, categoryID string, userID string) (*entities.Category, error) {
	category, err := s.categoryRepository.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	if category.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}
	return category, nil
}
