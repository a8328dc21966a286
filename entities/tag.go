package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name   string    `gorm:"size:100;not null" json:"name"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Recipes []Recipe `gorm:"many2many:recipe_tags" json:"-"`
}
