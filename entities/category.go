package entities

import (
	"github.com/google/uuid"
)

// Category names are unique per user at the application level, not the
// schema level: two users may both own a "Dessert".
type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name   string    `gorm:"size:100;not null" json:"name"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
