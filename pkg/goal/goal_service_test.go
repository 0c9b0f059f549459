package goal

import (
	"context"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGoalRepository struct {
	goals map[string]entities.Goal
}

func (r *fakeGoalRepository) GetGoalByUserID(_ context.Context, userID string) (*entities.Goal, error) {
	g, ok := r.goals[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r *fakeGoalRepository) UpsertGoal(_ context.Context, goal *entities.Goal) error {
	if existing, ok := r.goals[goal.UserID.String()]; ok {
		goal.ID = existing.ID
	}
	r.goals[goal.UserID.String()] = *goal
	return nil
}

type fakeTotals struct {
	totals nutrition.Totals
	date   time.Time
}

func (f *fakeTotals) Totals(_ context.Context, date time.Time, _ string) (nutrition.Totals, error) {
	f.date = date
	return f.totals, nil
}

func TestGoalService_Report(t *testing.T) {
	repo := &fakeGoalRepository{goals: map[string]entities.Goal{}}
	days := &fakeTotals{totals: nutrition.Totals{
		Profile:     nutrition.Profile{Calories: 1900, Protein: 175, Carbs: 150, Fat: 90, Fiber: 0},
		WaterIntake: 3,
	}}
	svc := NewGoalService(repo, days)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := svc.GetGoal(ctx, user)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	_, err = svc.UpsertGoal(ctx, domain.UpsertGoalRequest{Calories: 1500}, user)
	require.NoError(t, err)
	goal, err := svc.UpsertGoal(ctx, domain.UpsertGoalRequest{
		Calories: 2000, Protein: 200, Carbs: 200, Fat: 60, Fiber: 0, WaterIntake: 2,
	}, user)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, goal.Calories)
	assert.Len(t, repo.goals, 1)

	report, err := svc.Report(ctx, "2024-03-13", user)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", report.Date)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), days.date)
	require.Len(t, report.Rows, 6)

	byName := map[string]domain.GoalReportRow{}
	for _, r := range report.Rows {
		byName[r.Nutrient] = r
	}
	assert.Equal(t, "calories", report.Rows[0].Nutrient)
	assert.Equal(t, 95, byName["calories"].Percentage)
	assert.Equal(t, string(OnTarget), byName["calories"].Classification)
	assert.Equal(t, 88, byName["protein"].Percentage)
	assert.Equal(t, string(NearTarget), byName["protein"].Classification)
	assert.Equal(t, string(OffTarget), byName["carbs"].Classification)
	assert.True(t, byName["fat"].IsOver)
	assert.Equal(t, 1.0, byName["fat"].Progress)
	assert.Equal(t, 0, byName["fiber"].Percentage)
	assert.Equal(t, 150, byName["water_intake"].Percentage)
	assert.False(t, byName["water_intake"].IsOver)

	_, err = svc.Report(ctx, "yesterday", user)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestGoalService_ReportWithoutGoals(t *testing.T) {
	svc := NewGoalService(&fakeGoalRepository{goals: map[string]entities.Goal{}}, &fakeTotals{
		totals: nutrition.Totals{Profile: nutrition.Profile{Calories: 500}},
	})

	report, err := svc.Report(context.Background(), "2024-03-13", uuid.NewString())
	require.NoError(t, err)
	for _, r := range report.Rows {
		assert.Equal(t, 0, r.Percentage)
		assert.Equal(t, string(OffTarget), r.Classification)
		assert.Equal(t, 0.0, r.Progress)
	}
	assert.True(t, report.Rows[0].IsOver)
}
