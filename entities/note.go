package entities

import "github.com/google/uuid"

type DietitianClient struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DietitianID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_dietitian_client,priority:1" json:"dietitian_id"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_dietitian_client,priority:2;index" json:"client_id"`
	DietitianEmail string    `json:"dietitian_email"`
	ClientEmail    string    `json:"client_email"`
	Timestamp
}

type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DietitianID uuid.UUID `gorm:"type:uuid;not null;index:idx_note_thread,priority:1" json:"dietitian_id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index:idx_note_thread,priority:2" json:"client_id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Timestamp
}
