package food

import (
	"context"
	"nutrilog-backend/entities"
	"strings"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		CreateFood(ctx context.Context, food *entities.Food) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetFoodByExternalID(ctx context.Context, userID string, source string, externalID string) (*entities.Food, error)
		UpdateFood(ctx context.Context, food *entities.Food) error
		DeleteFood(ctx context.Context, id string) error
		GetFoods(ctx context.Context, userID string, query string, page, limit int) ([]*entities.Food, int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoodByExternalID(ctx context.Context, userID string, source string, externalID string) (*entities.Food, error) {
	var food entities.Food
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND external_id = ?", userID, source, externalID).
		First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) UpdateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Save(food).Error
}

func (r *foodRepository) DeleteFood(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Food{}).Error
}

func (r *foodRepository) GetFoods(ctx context.Context, userID string, query string, page, limit int) ([]*entities.Food, int64, error) {
	var foods []*entities.Food
	var count int64

	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&entities.Food{}).Where("user_id = ?", userID)
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Offset(offset).Limit(limit).Order("name asc").Find(&foods).Error; err != nil {
		return nil, 0, err
	}

	return foods, count, nil
}
