package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Draft struct {
	ID      uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uidx_draft_user_context,priority:1" json:"user_id"`
	Context string         `gorm:"not null;uniqueIndex:uidx_draft_user_context,priority:2" json:"context"`
	Payload datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"payload"`
	Timestamp
}
