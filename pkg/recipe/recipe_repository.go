package recipe

import (
	"context"
	"nutrilog-backend/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error

		CreateRecipeItem(ctx context.Context, item *entities.RecipeItem) error
		DeleteRecipeItem(ctx context.Context, id string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Items").Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("user_id = ?", userID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Offset(offset).Limit(limit).Order("name asc").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Items").Save(recipe).Error
}

// DeleteRecipe removes the recipe and its items in one transaction.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) CreateRecipeItem(ctx context.Context, item *entities.RecipeItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *recipeRepository) DeleteRecipeItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecipeItem{}).Error
}
