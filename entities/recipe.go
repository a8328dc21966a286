package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tips        string    `gorm:"type:text" json:"tips"`
	Source      string    `gorm:"size:255" json:"source"`
	ImageURL    string    `gorm:"size:255" json:"image_url,omitempty"`
	PrepTime    int       `json:"prep_time"`
	CookTime    int       `json:"cook_time"`
	Servings    int       `gorm:"default:4" json:"servings"`
	Difficulty  string    `gorm:"size:50" json:"difficulty"`
	Category    string    `gorm:"size:100" json:"category"`
	TotalCarbs  float64   `json:"total_carbs"`
	Rating      *int      `json:"rating,omitempty"`
	IsFavorite  bool      `json:"is_favorite"`
	ShareToken  *string   `gorm:"size:64;uniqueIndex" json:"share_token,omitempty"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Steps       []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Timestamp
}

// CarbsPerServing derives the per-portion carbohydrate load from the
// recipe-level total.
func (r *Recipe) CarbsPerServing() float64 {
	if r.Servings > 0 {
		return r.TotalCarbs / float64(r.Servings)
	}
	return 0
}

// TotalTime is preparation plus cooking time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Name     string    `gorm:"size:200;not null" json:"name"`
	Quantity *float64  `json:"quantity"`
	Unit     string    `gorm:"size:50;default:g" json:"unit"`
}

type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Order       int       `gorm:"column:step_order;not null" json:"order"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	Duration    *int      `json:"duration"`
}

type CookingHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	CookedAt time.Time `gorm:"type:timestamp" json:"cooked_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}
