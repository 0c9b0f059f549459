package entities

import (
	"time"

	"github.com/google/uuid"
)

type WeightEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_weight_user_date,priority:1" json:"user_id"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:uidx_weight_user_date,priority:2" json:"date"`
	WeightKg float64   `gorm:"not null" json:"weight_kg"`
	Timestamp
}
