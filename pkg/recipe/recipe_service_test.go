package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service RecipeService
	owner   uuid.UUID
	other   uuid.UUID
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Step{},
		&entities.Category{},
		&entities.Tag{},
		&entities.CookingHistory{},
	)
	suite.Require().NoError(err)

	suite.owner = suite.createUser("alice", "alice@example.com")
	suite.other = suite.createUser("bob", "bob@example.com")

	repository := NewRecipeRepository(suite.db)
	suite.service = NewRecipeService(repository, nil, nil)
}

func (suite *RecipeServiceTestSuite) createUser(username, email string) uuid.UUID {
	user := entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	}
	suite.Require().NoError(suite.db.Create(&user).Error)
	return user.ID
}

func (suite *RecipeServiceTestSuite) createRecipe(userID uuid.UUID, req domain.SaveRecipeRequest) domain.RecipeDetailResponse {
	res, err := suite.service.CreateRecipe(context.Background(), req, userID.String())
	suite.Require().NoError(err)
	return res
}

func (suite *RecipeServiceTestSuite) setCreatedAt(recipeID string, at time.Time) {
	suite.Require().NoError(suite.db.Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Update("created_at", at).Error)
}

func (suite *RecipeServiceTestSuite) TestListScopedToOwner() {
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Tarte aux pommes"})
	suite.createRecipe(suite.other, domain.SaveRecipeRequest{Title: "Crêpes"})

	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 1}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(res.Recipes, 1)
	suite.Equal("Tarte aux pommes", res.Recipes[0].Title)
	suite.Equal(int64(1), res.Pagination.Total)
}

func (suite *RecipeServiceTestSuite) TestDetailRejectsForeignOwner() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Tarte"})

	_, err := suite.service.GetRecipeDetail(context.Background(), created.ID, suite.other.String())
	suite.ErrorIs(err, domain.ErrUnauthorizedRecipeAccess)

	_, err = suite.service.GetRecipeDetail(context.Background(), uuid.NewString(), suite.owner.String())
	suite.ErrorIs(err, domain.ErrRecipeNotFound)
}

func (suite *RecipeServiceTestSuite) TestFavoritesSentinelCategory() {
	plain := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Flan", Category: "Dessert"})
	starred := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Mousse", Category: "Dessert"})

	_, err := suite.service.ToggleFavorite(context.Background(), starred.ID, suite.owner.String())
	suite.Require().NoError(err)

	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{
		Page:     1,
		Category: domain.CategoryFavorites,
	}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(res.Recipes, 1)
	suite.Equal(starred.ID, res.Recipes[0].ID)
	suite.NotEqual(plain.ID, res.Recipes[0].ID)
}

func (suite *RecipeServiceTestSuite) TestMaxTimeZeroIsARealBound() {
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Salade", PrepTime: "0", CookTime: "0"})
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Gratin", PrepTime: "20", CookTime: "40"})

	zero := 0
	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{
		Page:    1,
		MaxTime: &zero,
	}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(res.Recipes, 1)
	suite.Equal("Salade", res.Recipes[0].Title)

	res, err = suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 1}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Len(res.Recipes, 2)
}

func (suite *RecipeServiceTestSuite) TestSearchMatchesTitleAndTags() {
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Gâteau au chocolat"})
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Clafoutis", Tags: "chocolat, rapide"})
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Quiche"})

	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{
		Page:   1,
		Search: "CHOCOLAT",
	}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Len(res.Recipes, 2)
}

func (suite *RecipeServiceTestSuite) TestSortByDifficulty() {
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Soufflé", Difficulty: domain.DifficultyHard})
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Omelette", Difficulty: domain.DifficultyEasy})
	suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Risotto", Difficulty: domain.DifficultyMedium})

	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{
		Page: 1,
		Sort: domain.SortDifficultyAsc,
	}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(res.Recipes, 3)
	suite.Equal("Omelette", res.Recipes[0].Title)
	suite.Equal("Risotto", res.Recipes[1].Title)
	suite.Equal("Soufflé", res.Recipes[2].Title)
}

func (suite *RecipeServiceTestSuite) TestSortByDateDesc() {
	first := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Ancienne"})
	second := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Récente"})
	suite.setCreatedAt(first.ID, time.Now().Add(-48*time.Hour))
	suite.setCreatedAt(second.ID, time.Now().Add(-time.Hour))

	res, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 1}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(res.Recipes, 2)
	suite.Equal("Récente", res.Recipes[0].Title)
}

func (suite *RecipeServiceTestSuite) TestPagination() {
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Recette " + title})
	}

	page1, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 1}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Len(page1.Recipes, domain.RecipePageSize)
	suite.Equal(int64(10), page1.Pagination.Total)
	suite.Equal(int64(2), page1.Pagination.TotalPages)

	page2, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 2}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Len(page2.Recipes, 1)

	page3, err := suite.service.ListRecipes(context.Background(), domain.RecipeQuery{Page: 3}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Empty(page3.Recipes)
}

func (suite *RecipeServiceTestSuite) TestCreateCoercesScalars() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{
		Title:      "  Tarte fine  ",
		PrepTime:   "abc",
		CookTime:   "-5",
		Servings:   "0",
		TotalCarbs: "120",
	})

	suite.Equal("Tarte fine", created.Title)
	suite.Equal(0, created.PrepTime)
	suite.Equal(0, created.CookTime)
	suite.Equal(domain.DefaultServings, created.Servings)
	suite.Equal(120.0, created.TotalCarbs)
	suite.Equal(30.0, created.CarbsPerServing)
}

func (suite *RecipeServiceTestSuite) TestCreateRequiresTitle() {
	_, err := suite.service.CreateRecipe(context.Background(), domain.SaveRecipeRequest{Title: "   "}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrRecipeTitleRequired)
}

func (suite *RecipeServiceTestSuite) TestUpdateReplacesChildren() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{
		Title:                "Cookies",
		IngredientNames:      []string{"Farine", "Beurre"},
		IngredientQuantities: []string{"250", "125"},
		IngredientUnits:      []string{"g", "g"},
		StepInstructions:     []string{"Mélanger", "Cuire"},
		StepDurations:        []string{"", "12"},
		Tags:                 "goûter, rapide",
	})
	suite.Require().Len(created.Ingredients, 2)
	suite.Require().Len(created.Steps, 2)
	suite.Require().Len(created.Tags, 2)

	updated, err := suite.service.UpdateRecipe(context.Background(), created.ID, domain.SaveRecipeRequest{
		Title:                "Cookies",
		IngredientNames:      []string{"Chocolat"},
		IngredientQuantities: []string{"200"},
		IngredientUnits:      []string{"g"},
		StepInstructions:     []string{"Tout fondre"},
		Tags:                 "goûter",
	}, suite.owner.String())
	suite.Require().NoError(err)

	suite.Require().Len(updated.Ingredients, 1)
	suite.Equal("Chocolat", updated.Ingredients[0].Name)
	suite.Require().Len(updated.Steps, 1)
	suite.Equal(1, updated.Steps[0].Order)
	suite.Equal([]string{"goûter"}, updated.Tags)

	var orphaned int64
	suite.Require().NoError(suite.db.Model(&entities.Ingredient{}).Count(&orphaned).Error)
	suite.Equal(int64(1), orphaned)
}

func (suite *RecipeServiceTestSuite) TestUpdatePreservesRatingAndFavorite() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Brioche"})

	_, err := suite.service.RateRecipe(context.Background(), created.ID, 4, suite.owner.String())
	suite.Require().NoError(err)
	_, err = suite.service.ToggleFavorite(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateRecipe(context.Background(), created.ID, domain.SaveRecipeRequest{Title: "Brioche dorée"}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.Rating)
	suite.Equal(4, *updated.Rating)
	suite.True(updated.IsFavorite)
}

func (suite *RecipeServiceTestSuite) TestStepsRenumberedSkippingBlanks() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{
		Title:            "Pain",
		StepInstructions: []string{"Pétrir", "   ", "Lever", "Cuire"},
	})

	suite.Require().Len(created.Steps, 3)
	suite.Equal(1, created.Steps[0].Order)
	suite.Equal("Pétrir", created.Steps[0].Instruction)
	suite.Equal(2, created.Steps[1].Order)
	suite.Equal("Lever", created.Steps[1].Instruction)
	suite.Equal(3, created.Steps[2].Order)
}

func (suite *RecipeServiceTestSuite) TestRatingToggle() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Madeleines"})

	rating, err := suite.service.RateRecipe(context.Background(), created.ID, 5, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().NotNil(rating)
	suite.Equal(5, *rating)

	rating, err = suite.service.RateRecipe(context.Background(), created.ID, 3, suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().NotNil(rating)
	suite.Equal(3, *rating)

	// Repeating the held rating clears it.
	rating, err = suite.service.RateRecipe(context.Background(), created.ID, 3, suite.owner.String())
	suite.Require().NoError(err)
	suite.Nil(rating)

	_, err = suite.service.RateRecipe(context.Background(), created.ID, 6, suite.owner.String())
	suite.ErrorIs(err, domain.ErrInvalidRating)
}

func (suite *RecipeServiceTestSuite) TestShareTokenLifecycle() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Financiers"})

	first, err := suite.service.ShareRecipe(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)
	suite.NotEmpty(first.ShareToken)
	suite.NotContains(first.ShareToken, "-")

	again, err := suite.service.ShareRecipe(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal(first.ShareToken, again.ShareToken)

	shared, err := suite.service.GetSharedRecipe(context.Background(), first.ShareToken)
	suite.Require().NoError(err)
	suite.Equal("Financiers", shared.Title)

	suite.Require().NoError(suite.service.RevokeShare(context.Background(), created.ID, suite.owner.String()))
	_, err = suite.service.GetSharedRecipe(context.Background(), first.ShareToken)
	suite.ErrorIs(err, domain.ErrShareTokenNotFound)

	rotated, err := suite.service.ShareRecipe(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)
	suite.NotEqual(first.ShareToken, rotated.ShareToken)
}

func (suite *RecipeServiceTestSuite) TestDeleteRemovesChildrenAndHistory() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{
		Title:            "Crumble",
		IngredientNames:  []string{"Pommes"},
		StepInstructions: []string{"Cuire"},
	})
	suite.Require().NoError(suite.service.MarkAsCooked(context.Background(), created.ID, suite.owner.String()))

	suite.Require().NoError(suite.service.DeleteRecipe(context.Background(), created.ID, suite.owner.String()))

	_, err := suite.service.GetRecipeDetail(context.Background(), created.ID, suite.owner.String())
	suite.ErrorIs(err, domain.ErrRecipeNotFound)

	var ingredients, steps, history int64
	suite.Require().NoError(suite.db.Model(&entities.Ingredient{}).Count(&ingredients).Error)
	suite.Require().NoError(suite.db.Model(&entities.Step{}).Count(&steps).Error)
	suite.Require().NoError(suite.db.Model(&entities.CookingHistory{}).Count(&history).Error)
	suite.Zero(ingredients)
	suite.Zero(steps)
	suite.Zero(history)
}

func (suite *RecipeServiceTestSuite) TestCookingHistory() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{Title: "Ratatouille"})

	suite.Require().NoError(suite.service.MarkAsCooked(context.Background(), created.ID, suite.owner.String()))
	suite.Require().NoError(suite.service.MarkAsCooked(context.Background(), created.ID, suite.owner.String()))

	res, err := suite.service.GetCookingHistory(context.Background(), 1, 20, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal(int64(2), res.Total)
	suite.Require().Len(res.Entries, 2)
	suite.Equal("Ratatouille", res.Entries[0].Title)

	other, err := suite.service.GetCookingHistory(context.Background(), 1, 20, suite.other.String())
	suite.Require().NoError(err)
	suite.Zero(other.Total)
}

func (suite *RecipeServiceTestSuite) TestBuildDocument() {
	created := suite.createRecipe(suite.owner, domain.SaveRecipeRequest{
		Title:                "Tarte Tatin !",
		IngredientNames:      []string{"Pommes"},
		IngredientQuantities: []string{"6"},
		IngredientUnits:      []string{"pièce"},
		StepInstructions:     []string{"Caraméliser"},
	})

	doc, err := suite.service.BuildDocument(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal("Tarte_Tatin.txt", doc.Filename)
	suite.Contains(doc.Content, "Tarte Tatin !")
	suite.Contains(doc.Content, "6 pièce Pommes")
	suite.Contains(doc.Content, "1. Caraméliser")
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}

func TestDocumentFilename(t *testing.T) {
	cases := map[string]string{
		"Tarte aux pommes": "Tarte_aux_pommes",
		"Crème brûlée":     "Cr_me_br_l_e",
		"!!!":              "recette",
		"":                 "recette",
	}
	for in, want := range cases {
		if got := DocumentFilename(in); got != want {
			t.Errorf("DocumentFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
