package entities

import "github.com/google/uuid"

type Goal struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	Fiber       float64   `json:"fiber"`
	WaterIntake float64   `json:"water_intake"`
	Timestamp
}
