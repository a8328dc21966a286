package tag

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
)

type (
	TagService interface {
		ListTags(ctx context.Context, userID string) ([]domain.TagResponse, error)
		DeleteTag(ctx context.Context, tagID string, userID string) error
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) ListTags(ctx context.Context, userID string) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTagsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, domain.TagResponse{ID: t.ID.String(), Name: t.Name})
	}
	return responses, nil
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string, userID string) error {
	tag, err := s.tagRepository.GetTagByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTagNotFound
		}
		return err
	}
	if tag.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}
	return s.tagRepository.DeleteTag(ctx, tag)
}
