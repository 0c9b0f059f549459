package entities

import (
	"nutrilog-backend/pkg/nutrition"

	"github.com/google/uuid"
)

const (
	FoodSourceUser = "user"
	FoodSourceUSDA = "usda"
)

// Food is an entry of a user's food library. Nutrients are expressed per
// Basis; USDA imports are per 100 g and carry the cup weight when one of
// their portions is cup-like.
type Food struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string            `gorm:"not null" json:"name"`
	Brand         string            `json:"brand,omitempty"`
	Basis         nutrition.Basis   `gorm:"type:varchar(8);not null" json:"basis"`
	Nutrients     nutrition.Profile `gorm:"embedded" json:"nutrients"`
	CupGramWeight *float64          `json:"cup_gram_weight,omitempty"`
	Source        string            `gorm:"type:varchar(16);not null;default:'user'" json:"source"`
	ExternalID    string            `gorm:"index" json:"external_id,omitempty"`
	Timestamp
}

func (f *Food) Reference() nutrition.Reference {
	return nutrition.Reference{
		Profile:       f.Nutrients,
		Basis:         f.Basis,
		CupGramWeight: f.CupGramWeight,
	}
}
