package weight

import (
	"context"
	"nutrilog-backend/entities"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	WeightRepository interface {
		UpsertWeight(ctx context.Context, entry *entities.WeightEntry) error
		GetWeightByID(ctx context.Context, id string) (*entities.WeightEntry, error)
		GetWeightByDate(ctx context.Context, userID string, date time.Time) (*entities.WeightEntry, error)
		GetWeights(ctx context.Context, userID string, from, to time.Time) ([]*entities.WeightEntry, error)
		DeleteWeight(ctx context.Context, id string) error
	}

	weightRepository struct {
		db *gorm.DB
	}
)

func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

// UpsertWeight keeps one entry per user and date; logging a date twice
// replaces the weight.
func (r *weightRepository) UpsertWeight(ctx context.Context, entry *entities.WeightEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "updated_at"}),
	}).Create(entry).Error
}

func (r *weightRepository) GetWeightByID(ctx context.Context, id string) (*entities.WeightEntry, error) {
	var entry entities.WeightEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *weightRepository) GetWeightByDate(ctx context.Context, userID string, date time.Time) (*entities.WeightEntry, error) {
	var entry entities.WeightEntry
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *weightRepository) GetWeights(ctx context.Context, userID string, from, to time.Time) ([]*entities.WeightEntry, error) {
	var entries []*entities.WeightEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *weightRepository) DeleteWeight(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.WeightEntry{}).Error
}
