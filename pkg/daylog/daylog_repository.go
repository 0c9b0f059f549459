package daylog

import (
	"context"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	DayLogRepository interface {
		GetDay(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Day, error)
		CreateDay(ctx context.Context, day *entities.Day) error
		ListDaysInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entities.Day, error)
		UpdateDayTotals(ctx context.Context, dayID uuid.UUID, totals nutrition.Profile) error
		UpdateWater(ctx context.Context, dayID uuid.UUID, water float64) error
		UpdateLock(ctx context.Context, dayID uuid.UUID, locked bool) error

		GetWeekByStart(ctx context.Context, userID uuid.UUID, start time.Time) (*entities.Week, error)
		GetWeekContaining(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Week, error)
		CreateWeek(ctx context.Context, week *entities.Week) error

		ListMeals(ctx context.Context, dayID uuid.UUID) ([]entities.Meal, error)
		CreateMeal(ctx context.Context, meal *entities.Meal) error
		DeleteMeal(ctx context.Context, mealID uuid.UUID) error
		CreateMealItem(ctx context.Context, item *entities.MealItem) error
		DeleteMealItem(ctx context.Context, itemID uuid.UUID) error
		DeleteMealItems(ctx context.Context, mealID uuid.UUID) error

		// Week migration
		ListWeeks(ctx context.Context) ([]entities.Week, error)
		ListDaysByWeek(ctx context.Context, weekID uuid.UUID) ([]entities.Day, error)
		MoveDay(ctx context.Context, dayID, weekID uuid.UUID) error
		DeleteWeek(ctx context.Context, weekID uuid.UUID) error
	}

	dayLogRepository struct {
		db *gorm.DB
	}
)

func NewDayLogRepository(db *gorm.DB) DayLogRepository {
	return &dayLogRepository{db: db}
}

func (r *dayLogRepository) GetDay(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Day, error) {
	var day entities.Day
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&day).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *dayLogRepository) CreateDay(ctx context.Context, day *entities.Day) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *dayLogRepository) ListDaysInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entities.Day, error) {
	var days []entities.Day
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date asc").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *dayLogRepository) UpdateDayTotals(ctx context.Context, dayID uuid.UUID, totals nutrition.Profile) error {
	return r.db.WithContext(ctx).Model(&entities.Day{}).
		Where("id = ?", dayID).
		Updates(map[string]interface{}{
			"total_calories": totals.Calories,
			"total_protein":  totals.Protein,
			"total_carbs":    totals.Carbs,
			"total_fat":      totals.Fat,
			"total_fiber":    totals.Fiber,
			"total_water":    totals.Water,
		}).Error
}

func (r *dayLogRepository) UpdateWater(ctx context.Context, dayID uuid.UUID, water float64) error {
	return r.db.WithContext(ctx).Model(&entities.Day{}).
		Where("id = ?", dayID).
		Update("water_intake", water).Error
}

func (r *dayLogRepository) UpdateLock(ctx context.Context, dayID uuid.UUID, locked bool) error {
	return r.db.WithContext(ctx).Model(&entities.Day{}).
		Where("id = ?", dayID).
		Update("is_locked", locked).Error
}

func (r *dayLogRepository) GetWeekByStart(ctx context.Context, userID uuid.UUID, start time.Time) (*entities.Week, error) {
	var week entities.Week
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date = ?", userID, start).
		First(&week).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *dayLogRepository) GetWeekContaining(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Week, error) {
	var week entities.Week
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, date, date).
		Order("start_date asc").
		First(&week).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *dayLogRepository) CreateWeek(ctx context.Context, week *entities.Week) error {
	return r.db.WithContext(ctx).Create(week).Error
}

func (r *dayLogRepository) ListMeals(ctx context.Context, dayID uuid.UUID) ([]entities.Meal, error) {
	var meals []entities.Meal
	if err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Order("sort_order asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *dayLogRepository) CreateMeal(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Omit("Items").Create(meal).Error
}

func (r *dayLogRepository) DeleteMeal(ctx context.Context, mealID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", mealID).Delete(&entities.Meal{}).Error
}

func (r *dayLogRepository) CreateMealItem(ctx context.Context, item *entities.MealItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *dayLogRepository) DeleteMealItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&entities.MealItem{}).Error
}

func (r *dayLogRepository) DeleteMealItems(ctx context.Context, mealID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("meal_id = ?", mealID).Delete(&entities.MealItem{}).Error
}

func (r *dayLogRepository) ListWeeks(ctx context.Context) ([]entities.Week, error) {
	var weeks []entities.Week
	if err := r.db.WithContext(ctx).Order("user_id asc, start_date asc").Find(&weeks).Error; err != nil {
		return nil, err
	}
	return weeks, nil
}

func (r *dayLogRepository) ListDaysByWeek(ctx context.Context, weekID uuid.UUID) ([]entities.Day, error) {
	var days []entities.Day
	if err := r.db.WithContext(ctx).Where("week_id = ?", weekID).Order("date asc").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *dayLogRepository) MoveDay(ctx context.Context, dayID, weekID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entities.Day{}).
		Where("id = ?", dayID).
		Update("week_id", weekID).Error
}

func (r *dayLogRepository) DeleteWeek(ctx context.Context, weekID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", weekID).Delete(&entities.Week{}).Error
}
