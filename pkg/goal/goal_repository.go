package goal

import (
	"context"
	"nutrilog-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	GoalRepository interface {
		GetGoalByUserID(ctx context.Context, userID string) (*entities.Goal, error)
		UpsertGoal(ctx context.Context, goal *entities.Goal) error
	}

	goalRepository struct {
		db *gorm.DB
	}
)

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) GetGoalByUserID(ctx context.Context, userID string) (*entities.Goal, error) {
	var goal entities.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpsertGoal inserts the user's goal or overwrites the targets of the
// existing row.
func (r *goalRepository) UpsertGoal(ctx context.Context, goal *entities.Goal) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"calories", "protein", "carbs", "fat", "fiber", "water_intake", "updated_at",
		}),
	}).Create(goal).Error
}
