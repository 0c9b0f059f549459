package entities

import (
	"nutrilog-backend/pkg/nutrition"
	"time"

	"github.com/google/uuid"
)

type Week struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_week_user_start,priority:1" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:uidx_week_user_start,priority:2" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"end_date"`

	Days []Day `gorm:"foreignKey:WeekID" json:"days,omitempty"`
	Timestamp
}

// Day holds the persisted totals of one calendar date. Totals are derived from
// the day's meal items and may be healed on re-fetch.
type Day struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uidx_day_user_date,priority:1" json:"user_id"`
	Date        time.Time         `gorm:"type:date;not null;uniqueIndex:uidx_day_user_date,priority:2" json:"date"`
	WeekID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"week_id"`
	Totals      nutrition.Profile `gorm:"embedded;embeddedPrefix:total_" json:"totals"`
	WaterIntake float64           `gorm:"not null;default:0" json:"water_intake"`
	IsLocked    bool              `gorm:"not null;default:false" json:"is_locked"`

	Week  *Week  `gorm:"foreignKey:WeekID" json:"-"`
	Meals []Meal `gorm:"foreignKey:DayID" json:"meals,omitempty"`
	Timestamp
}

type Meal struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DayID  uuid.UUID `gorm:"type:uuid;not null;index" json:"day_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"not null" json:"name"`
	Order  int       `gorm:"column:sort_order;not null" json:"order"`

	Items []MealItem `gorm:"foreignKey:MealID" json:"items,omitempty"`
	Timestamp
}

const (
	ItemKindFood   = "food"
	ItemKindRecipe = "recipe"
	ItemKindCustom = "custom"
	ItemKindNote   = "note"
)

type MealItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MealID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"meal_id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind        string            `gorm:"not null" json:"kind"`
	SourceID    *uuid.UUID        `gorm:"type:uuid" json:"source_id,omitempty"`
	Name        string            `gorm:"not null" json:"name"`
	ServingText string            `json:"serving_text"`
	Nutrients   nutrition.Profile `gorm:"embedded" json:"nutrients"`
	Order       int               `gorm:"column:sort_order;not null" json:"order"`
	Timestamp
}
