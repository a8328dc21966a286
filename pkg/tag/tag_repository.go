package tag

import (
	"context"

	"gorm.io/gorm"

	"Sweet-Recipes-Backend/entities"
)

type (
	TagRepository interface {
		GetTagsByUser(ctx context.Context, userID string) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		DeleteTag(ctx context.Context, tag *entities.Tag) error
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTagsByUser(ctx context.Context, userID string) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes the tag and its recipe links; recipes themselves
// are untouched.
func (r *tagRepository) DeleteTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tag).Association("Recipes").Clear(); err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
