package utils

import (
	"nutrilog-backend/pkg/nutrition"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once
)

// InitValidator builds the shared validator with the custom rules:
// serving_unit accepts anything nutrition.ParseUnit understands.
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("serving_unit", func(fl validator.FieldLevel) bool {
			_, err := nutrition.ParseUnit(fl.Field().String())
			return err == nil
		})
		Validate = v
	})
}
