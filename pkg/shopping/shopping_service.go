package shopping

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/internal/utils/mailing"
	"Sweet-Recipes-Backend/pkg/recipe"
	"Sweet-Recipes-Backend/pkg/user"
)

type (
	ShoppingService interface {
		BuildShoppingList(ctx context.Context, req domain.ShoppingListRequest, userID string) (domain.ShoppingListResponse, error)
		EmailShoppingList(ctx context.Context, req domain.ShoppingListRequest, userID string) error
	}

	shoppingService struct {
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
	}

	groupKey struct {
		name string
		unit string
	}
)

func NewShoppingService(recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) ShoppingService {
	return &shoppingService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
	}
}

// BuildShoppingList merges the ingredient lists of the selected recipes.
// Recipe ids not owned by the user are silently dropped; if nothing is
// left the caller gets an explicit error rather than an empty list.
func (s *shoppingService) BuildShoppingList(ctx context.Context, req domain.ShoppingListRequest, userID string) (domain.ShoppingListResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByIDs(ctx, userID, req.RecipeIDs)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}
	if len(recipes) == 0 {
		return domain.ShoppingListResponse{}, domain.ErrNothingToConsolidate
	}

	groups := make(map[groupKey]*domain.ShoppingItem)
	items := make([]*domain.ShoppingItem, 0)

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			name := strings.TrimSpace(ing.Name)
			unit := strings.TrimSpace(ing.Unit)

			// Same name with a different unit stays a separate line.
			key := groupKey{name: strings.ToLower(name), unit: strings.ToLower(unit)}
			item, ok := groups[key]
			if !ok {
				item = &domain.ShoppingItem{Name: name, Unit: unit, Recipes: []string{}}
				groups[key] = item
				items = append(items, item)
			}

			if ing.Quantity != nil {
				item.Quantity += *ing.Quantity
				item.HasQuantity = true
			}

			if !containsTitle(item.Recipes, r.Title) {
				item.Recipes = append(item.Recipes, r.Title)
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	result := make([]domain.ShoppingItem, 0, len(items))
	for _, item := range items {
		result = append(result, *item)
	}

	return domain.ShoppingListResponse{
		Items:       result,
		RecipeCount: len(recipes),
	}, nil
}

func (s *shoppingService) EmailShoppingList(ctx context.Context, req domain.ShoppingListRequest, userID string) error {
	list, err := s.BuildShoppingList(ctx, req, userID)
	if err != nil {
		return err
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	return mailing.SendMail(owner.Email, "Votre liste de courses", renderShoppingList(list))
}

func renderShoppingList(list domain.ShoppingListResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Liste de courses (%d recettes)\n\n", list.RecipeCount)
	for _, item := range list.Items {
		if item.HasQuantity {
			fmt.Fprintf(&b, "- %g %s %s", item.Quantity, item.Unit, item.Name)
		} else {
			fmt.Fprintf(&b, "- %s", item.Name)
		}
		if len(item.Recipes) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(item.Recipes, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func containsTitle(titles []string, title string) bool {
	for _, t := range titles {
		if t == title {
			return true
		}
	}
	return false
}
