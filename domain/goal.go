package domain

import "errors"

var (
	MessageSuccessGetGoal    = "goal retrieved successfully"
	MessageSuccessUpsertGoal = "goal saved successfully"
	MessageSuccessGetReport  = "goal report retrieved successfully"

	MessageFailedGetGoal    = "failed to get goal"
	MessageFailedUpsertGoal = "failed to save goal"
	MessageFailedGetReport  = "failed to get goal report"

	ErrGoalNotFound = errors.New("goal not found")
)

type (
	UpsertGoalRequest struct {
		Calories    float64 `json:"calories" validate:"min=0"`
		Protein     float64 `json:"protein" validate:"min=0"`
		Carbs       float64 `json:"carbs" validate:"min=0"`
		Fat         float64 `json:"fat" validate:"min=0"`
		Fiber       float64 `json:"fiber" validate:"min=0"`
		WaterIntake float64 `json:"water_intake" validate:"min=0"`
	}

	GoalResponse struct {
		Calories    float64 `json:"calories"`
		Protein     float64 `json:"protein"`
		Carbs       float64 `json:"carbs"`
		Fat         float64 `json:"fat"`
		Fiber       float64 `json:"fiber"`
		WaterIntake float64 `json:"water_intake"`
	}

	GoalReportRow struct {
		Nutrient       string  `json:"nutrient"`
		Actual         float64 `json:"actual"`
		Goal           float64 `json:"goal"`
		Percentage     int     `json:"percentage"`
		Classification string  `json:"classification"`
		IsOver         bool    `json:"is_over"`
		Progress       float64 `json:"progress"`
	}

	GoalReportResponse struct {
		Date string          `json:"date"`
		Rows []GoalReportRow `json:"rows"`
	}
)
