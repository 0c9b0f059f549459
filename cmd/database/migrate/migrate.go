package migration

import (
	"fmt"
	"nutrilog-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("error creating uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"week", &entities.Week{}},
		{"day", &entities.Day{}},
		{"meal", &entities.Meal{}},
		{"meal item", &entities.MealItem{}},
		{"food", &entities.Food{}},
		{"recipe", &entities.Recipe{}},
		{"recipe item", &entities.RecipeItem{}},
		{"goal", &entities.Goal{}},
		{"weight entry", &entities.WeightEntry{}},
		{"dietitian client", &entities.DietitianClient{}},
		{"note", &entities.Note{}},
		{"draft", &entities.Draft{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	return nil
}
