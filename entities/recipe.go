package entities

import (
	"nutrilog-backend/pkg/nutrition"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	YieldCups   float64   `gorm:"not null;default:1" json:"yield_cups"`

	Items []RecipeItem `gorm:"foreignKey:RecipeID" json:"items,omitempty"`
	Timestamp
}

type RecipeItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"recipe_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind        string            `gorm:"not null" json:"kind"`
	SourceID    *uuid.UUID        `gorm:"type:uuid" json:"source_id,omitempty"`
	Name        string            `gorm:"not null" json:"name"`
	ServingText string            `json:"serving_text"`
	Nutrients   nutrition.Profile `gorm:"embedded" json:"nutrients"`
	Order       int               `gorm:"column:sort_order;not null" json:"order"`
	Timestamp
}
