package goal

import (
	"context"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// TotalsReader returns the totals of one logged day.
	TotalsReader interface {
		Totals(ctx context.Context, date time.Time, userID string) (nutrition.Totals, error)
	}

	GoalService interface {
		GetGoal(ctx context.Context, userID string) (domain.GoalResponse, error)
		UpsertGoal(ctx context.Context, req domain.UpsertGoalRequest, userID string) (domain.GoalResponse, error)
		Report(ctx context.Context, date string, userID string) (domain.GoalReportResponse, error)
	}

	goalService struct {
		goalRepository GoalRepository
		days           TotalsReader
	}
)

func NewGoalService(goalRepository GoalRepository, days TotalsReader) GoalService {
	return &goalService{
		goalRepository: goalRepository,
		days:           days,
	}
}

func (s *goalService) GetGoal(ctx context.Context, userID string) (domain.GoalResponse, error) {
	goal, err := s.goalRepository.GetGoalByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GoalResponse{}, domain.ErrGoalNotFound
		}
		return domain.GoalResponse{}, err
	}

	return toGoalResponse(goal), nil
}

func (s *goalService) UpsertGoal(ctx context.Context, req domain.UpsertGoalRequest, userID string) (domain.GoalResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GoalResponse{}, domain.ErrParseUUID
	}

	goal := &entities.Goal{
		ID:          uuid.New(),
		UserID:      userUUID,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Fiber:       req.Fiber,
		WaterIntake: req.WaterIntake,
	}

	if err := s.goalRepository.UpsertGoal(ctx, goal); err != nil {
		return domain.GoalResponse{}, err
	}

	return toGoalResponse(goal), nil
}

// Report compares the totals logged on date with the user's goals. A user
// without goals gets rows with zero goals.
func (s *goalService) Report(ctx context.Context, date string, userID string) (domain.GoalReportResponse, error) {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return domain.GoalReportResponse{}, domain.ErrInvalidDate
	}

	var targets domain.GoalResponse
	goal, err := s.goalRepository.GetGoalByUserID(ctx, userID)
	switch {
	case err == nil:
		targets = toGoalResponse(goal)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.GoalReportResponse{}, err
	}

	totals, err := s.days.Totals(ctx, day, userID)
	if err != nil {
		return domain.GoalReportResponse{}, err
	}

	return domain.GoalReportResponse{
		Date: date,
		Rows: BuildReport(totals, targets),
	}, nil
}

// BuildReport produces one row per nutrient in display order.
func BuildReport(totals nutrition.Totals, targets domain.GoalResponse) []domain.GoalReportRow {
	actual := map[Nutrient]float64{
		NutrientCalories:    totals.Calories,
		NutrientProtein:     totals.Protein,
		NutrientCarbs:       totals.Carbs,
		NutrientFat:         totals.Fat,
		NutrientFiber:       totals.Fiber,
		NutrientWaterIntake: totals.WaterIntake,
	}
	goals := map[Nutrient]float64{
		NutrientCalories:    targets.Calories,
		NutrientProtein:     targets.Protein,
		NutrientCarbs:       targets.Carbs,
		NutrientFat:         targets.Fat,
		NutrientFiber:       targets.Fiber,
		NutrientWaterIntake: targets.WaterIntake,
	}

	rows := make([]domain.GoalReportRow, 0, len(Nutrients))
	for _, n := range Nutrients {
		status := Compare(actual[n], goals[n])
		rows = append(rows, domain.GoalReportRow{
			Nutrient:       string(n),
			Actual:         actual[n],
			Goal:           goals[n],
			Percentage:     status.Percentage,
			Classification: string(status.Classification),
			IsOver:         IsOver(n, actual[n], goals[n]),
			Progress:       ProgressFraction(actual[n], goals[n]),
		})
	}
	return rows
}

func toGoalResponse(goal *entities.Goal) domain.GoalResponse {
	return domain.GoalResponse{
		Calories:    goal.Calories,
		Protein:     goal.Protein,
		Carbs:       goal.Carbs,
		Fat:         goal.Fat,
		Fiber:       goal.Fiber,
		WaterIntake: goal.WaterIntake,
	}
}
