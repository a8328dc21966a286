package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessDeleteTag = "tag deleted successfully"

	MessageFailedGetTags   = "failed to get tags"
	MessageFailedDeleteTag = "failed to delete tag"

	ErrTagNotFound = errors.New("tag not found")
)

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
