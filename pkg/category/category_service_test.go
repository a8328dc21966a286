package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service CategoryService
	owner   uuid.UUID
	other   uuid.UUID
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Category{},
	)
	suite.Require().NoError(err)

	suite.owner = suite.createUser("alice", "alice@example.com")
	suite.other = suite.createUser("bob", "bob@example.com")

	suite.service = NewCategoryService(NewCategoryRepository(suite.db))
}

func (suite *CategoryServiceTestSuite) createUser(username, email string) uuid.UUID {
	u := entities.User{ID: uuid.New(), Username: username, Email: email}
	suite.Require().NoError(suite.db.Create(&u).Error)
	return u.ID
}

func (suite *CategoryServiceTestSuite) createRecipe(userID uuid.UUID, title, category string) uuid.UUID {
	r := entities.Recipe{ID: uuid.New(), UserID: userID, Title: title, Category: category, Servings: 4}
	suite.Require().NoError(suite.db.Create(&r).Error)
	return r.ID
}

func (suite *CategoryServiceTestSuite) recipeCategory(id uuid.UUID) string {
	var r entities.Recipe
	suite.Require().NoError(suite.db.First(&r, "id = ?", id).Error)
	return r.Category
}

func (suite *CategoryServiceTestSuite) TestAddCategory() {
	created, err := suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "  Dessert  "}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal("Dessert", created.Name)

	_, err = suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Dessert"}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrCategoryExists)

	// Same name under another user is fine.
	_, err = suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Dessert"}, suite.other.String())
	suite.NoError(err)

	_, err = suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "   "}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrCategoryNameInvalid)
}

func (suite *CategoryServiceTestSuite) TestRenameCascadesToOwnRecipesOnly() {
	created, err := suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Dessert"}, suite.owner.String())
	suite.Require().NoError(err)

	mine1 := suite.createRecipe(suite.owner, "Flan", "Dessert")
	mine2 := suite.createRecipe(suite.owner, "Mousse", "Dessert")
	unrelated := suite.createRecipe(suite.owner, "Quiche", "Plat")
	theirs := suite.createRecipe(suite.other, "Tiramisu", "Dessert")

	res, err := suite.service.RenameCategory(context.Background(), created.ID, domain.RenameCategoryRequest{NewName: "Douceurs"}, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal(int64(2), res.AffectedRecipes)
	suite.Equal("Douceurs", res.Category.Name)

	suite.Equal("Douceurs", suite.recipeCategory(mine1))
	suite.Equal("Douceurs", suite.recipeCategory(mine2))
	suite.Equal("Plat", suite.recipeCategory(unrelated))
	suite.Equal("Dessert", suite.recipeCategory(theirs))
}

func (suite *CategoryServiceTestSuite) TestRenameRejectsBlankSameAndDuplicate() {
	created, err := suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Dessert"}, suite.owner.String())
	suite.Require().NoError(err)
	_, err = suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Plat"}, suite.owner.String())
	suite.Require().NoError(err)

	_, err = suite.service.RenameCategory(context.Background(), created.ID, domain.RenameCategoryRequest{NewName: "   "}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrCategoryNameInvalid)

	_, err = suite.service.RenameCategory(context.Background(), created.ID, domain.RenameCategoryRequest{NewName: "Dessert"}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrCategoryNameInvalid)

	_, err = suite.service.RenameCategory(context.Background(), created.ID, domain.RenameCategoryRequest{NewName: "Plat"}, suite.owner.String())
	suite.ErrorIs(err, domain.ErrCategoryExists)

	_, err = suite.service.RenameCategory(context.Background(), created.ID, domain.RenameCategoryRequest{NewName: "Douceurs"}, suite.other.String())
	suite.ErrorIs(err, domain.ErrUserNotAllowed)
}

func (suite *CategoryServiceTestSuite) TestDeleteReassignsToFallback() {
	created, err := suite.service.AddCategory(context.Background(), domain.AddCategoryRequest{Name: "Dessert"}, suite.owner.String())
	suite.Require().NoError(err)

	mine := suite.createRecipe(suite.owner, "Flan", "Dessert")
	theirs := suite.createRecipe(suite.other, "Tiramisu", "Dessert")

	res, err := suite.service.DeleteCategory(context.Background(), created.ID, suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal(int64(1), res.AffectedRecipes)

	suite.Equal(domain.FallbackCategory, suite.recipeCategory(mine))
	suite.Equal("Dessert", suite.recipeCategory(theirs))

	var count int64
	suite.Require().NoError(suite.db.Model(&entities.Category{}).Where("user_id = ?", suite.owner).Count(&count).Error)
	suite.Zero(count)
}

func (suite *CategoryServiceTestSuite) TestInitDefaultCategoriesIsIdempotent() {
	first, err := suite.service.InitDefaultCategories(context.Background(), suite.owner.String())
	suite.Require().NoError(err)
	suite.Equal(len(domain.DefaultCategories), first.Added)

	again, err := suite.service.InitDefaultCategories(context.Background(), suite.owner.String())
	suite.Require().NoError(err)
	suite.Zero(again.Added)

	listed := suite.service.ListCategories(context.Background(), suite.owner.String())
	suite.Len(listed, len(domain.DefaultCategories))
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
