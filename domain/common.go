package domain

import (
	"errors"

	"nutrilog-backend/pkg/nutrition"
)

const (
	RoleClient    = "client"
	RoleDietitian = "dietitian"

	DateLayout = "2006-01-02"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID         = errors.New("failed to parse UUID")
	ErrUserNotAllowed    = errors.New("user not allowed")
	ErrTokenNotFound     = errors.New("failed to token not found")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNutrientsRequired = errors.New("custom items need nutrients")
)

type (
	NutrientsRequest struct {
		Calories float64 `json:"calories" validate:"min=0"`
		Protein  float64 `json:"protein" validate:"min=0"`
		Carbs    float64 `json:"carbs" validate:"min=0"`
		Fat      float64 `json:"fat" validate:"min=0"`
		Fiber    float64 `json:"fiber" validate:"min=0"`
		Water    float64 `json:"water" validate:"min=0"`
	}

	// LineItemRequest describes one entry added to a meal or a recipe. Food and
	// recipe entries are converted from their reference with Quantity and Unit;
	// custom entries carry their nutrients; notes carry only a name.
	LineItemRequest struct {
		Kind      string            `json:"kind" validate:"required,oneof=food recipe custom note"`
		SourceID  string            `json:"source_id" validate:"required_if=Kind food,required_if=Kind recipe,omitempty,uuid"`
		Name      string            `json:"name" validate:"required_if=Kind custom,required_if=Kind note,max=200"`
		Quantity  float64           `json:"quantity" validate:"omitempty,gt=0"`
		Unit      string            `json:"unit" validate:"omitempty,serving_unit"`
		Nutrients *NutrientsRequest `json:"nutrients" validate:"required_if=Kind custom,omitempty"`
	}

	LineItemResponse struct {
		ID          string            `json:"id"`
		Kind        string            `json:"kind"`
		SourceID    string            `json:"source_id,omitempty"`
		Name        string            `json:"name"`
		ServingText string            `json:"serving_text"`
		Nutrients   nutrition.Profile `json:"nutrients"`
		Order       int               `json:"order"`
	}
)

func (r NutrientsRequest) Profile() nutrition.Profile {
	return nutrition.Profile{
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
		Fiber:    r.Fiber,
		Water:    r.Water,
	}
}
