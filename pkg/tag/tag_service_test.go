package tag

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

type TagServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service TagService
	owner   uuid.UUID
	other   uuid.UUID
}

func (suite *TagServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Tag{},
	)
	suite.Require().NoError(err)

	suite.owner = suite.createUser("alice", "alice@example.com")
	suite.other = suite.createUser("bob", "bob@example.com")

	suite.service = NewTagService(NewTagRepository(suite.db))
}

func (suite *TagServiceTestSuite) createUser(username, email string) uuid.UUID {
	u := entities.User{ID: uuid.New(), Username: username, Email: email}
	suite.Require().NoError(suite.db.Create(&u).Error)
	return u.ID
}

func (suite *TagServiceTestSuite) createTag(userID uuid.UUID, name string) entities.Tag {
	t := entities.Tag{ID: uuid.New(), UserID: userID, Name: name}
	suite.Require().NoError(suite.db.Create(&t).Error)
	return t
}

func (suite *TagServiceTestSuite) TestListTagsScopedAndSorted() {
	suite.createTag(suite.owner, "rapide")
	suite.createTag(suite.owner, "goûter")
	suite.createTag(suite.other, "ailleurs")

	tags, err := suite.service.ListTags(context.Background(), suite.owner.String())
	suite.Require().NoError(err)
	suite.Require().Len(tags, 2)
	suite.Equal("goûter", tags[0].Name)
	suite.Equal("rapide", tags[1].Name)
}

func (suite *TagServiceTestSuite) TestDeleteTagKeepsRecipes() {
	tag := suite.createTag(suite.owner, "rapide")
	r := entities.Recipe{ID: uuid.New(), UserID: suite.owner, Title: "Omelette", Servings: 4}
	suite.Require().NoError(suite.db.Create(&r).Error)
	suite.Require().NoError(suite.db.Model(&r).Association("Tags").Append(&tag))

	suite.Require().NoError(suite.service.DeleteTag(context.Background(), tag.ID.String(), suite.owner.String()))

	var tagCount, recipeCount int64
	suite.Require().NoError(suite.db.Model(&entities.Tag{}).Count(&tagCount).Error)
	suite.Require().NoError(suite.db.Model(&entities.Recipe{}).Count(&recipeCount).Error)
	suite.Zero(tagCount)
	suite.Equal(int64(1), recipeCount)
}

func (suite *TagServiceTestSuite) TestDeleteTagChecksOwnership() {
	tag := suite.createTag(suite.owner, "rapide")

	err := suite.service.DeleteTag(context.Background(), tag.ID.String(), suite.other.String())
	suite.ErrorIs(err, domain.ErrUserNotAllowed)

	err = suite.service.DeleteTag(context.Background(), uuid.NewString(), suite.owner.String())
	suite.ErrorIs(err, domain.ErrTagNotFound)
}

func TestTagServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TagServiceTestSuite))
}
