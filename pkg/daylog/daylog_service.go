package daylog

import (
	"context"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/lineitem"
	"nutrilog-backend/pkg/nutrition"
	"time"

	"github.com/google/uuid"
)

type (
	DayLogService interface {
		GetDay(ctx context.Context, date string, userID string) (domain.DayResponse, error)
		AddMeal(ctx context.Context, date string, req domain.AddMealRequest, userID string) (domain.MealResponse, error)
		AddItem(ctx context.Context, date string, req domain.AddMealItemRequest, userID string) (domain.AddMealItemResponse, error)
		DeleteItem(ctx context.Context, date string, itemID string, userID string) (domain.DayResponse, error)
		DeleteMeal(ctx context.Context, date string, mealID string, userID string) (domain.DayResponse, error)
		SetWater(ctx context.Context, date string, req domain.SetWaterRequest, userID string) (domain.DayResponse, error)
		AdjustWater(ctx context.Context, date string, req domain.AdjustWaterRequest, userID string) (domain.DayResponse, error)
		ToggleLock(ctx context.Context, date string, userID string) (domain.DayResponse, error)
		GetWeek(ctx context.Context, date string, userID string) (domain.WeekSummaryResponse, error)
		Totals(ctx context.Context, date time.Time, userID string) (nutrition.Totals, error)
	}

	dayLogService struct {
		repo     DayLogRepository
		resolver *Resolver
		registry *Registry
		items    *lineitem.Resolver
	}
)

func NewDayLogService(repo DayLogRepository, resolver *Resolver, registry *Registry, items *lineitem.Resolver) DayLogService {
	return &dayLogService{
		repo:     repo,
		resolver: resolver,
		registry: registry,
		items:    items,
	}
}

func (s *dayLogService) open(ctx context.Context, date string, userID string) (*Session, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.registry.Open(ctx, userUUID, d)
}

func (s *dayLogService) GetDay(ctx context.Context, date string, userID string) (domain.DayResponse, error) {
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

func (s *dayLogService) AddMeal(ctx context.Context, date string, req domain.AddMealRequest, userID string) (domain.MealResponse, error) {
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.MealResponse{}, err
	}
	meal, err := session.AddMeal(ctx, req.Name)
	if err != nil {
		return domain.MealResponse{}, err
	}
	return mealView(meal), nil
}

func (s *dayLogService) AddItem(ctx context.Context, date string, req domain.AddMealItemRequest, userID string) (domain.AddMealItemResponse, error) {
	var mealID *uuid.UUID
	if req.MealID != "" {
		id, err := uuid.Parse(req.MealID)
		if err != nil {
			return domain.AddMealItemResponse{}, domain.ErrParseUUID
		}
		mealID = &id
	}

	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.AddMealItemResponse{}, err
	}
	// Fail fast before touching the reference store.
	if session.Snapshot().Day.IsLocked {
		return domain.AddMealItemResponse{}, domain.ErrDayLocked
	}

	resolved, err := s.items.Resolve(ctx, req.LineItemRequest, userID)
	if err != nil {
		return domain.AddMealItemResponse{}, err
	}

	item, meal, err := session.AddItem(ctx, mealID, req.MealName, entities.MealItem{
		Kind:        resolved.Kind,
		SourceID:    resolved.SourceID,
		Name:        resolved.Name,
		ServingText: resolved.ServingText,
		Nutrients:   resolved.Nutrients,
	})
	if err != nil {
		return domain.AddMealItemResponse{}, err
	}

	return domain.AddMealItemResponse{
		MealID:   meal.ID.String(),
		Item:     itemView(item),
		Basis:    resolved.Basis,
		Degraded: resolved.Degraded,
		Day:      DayView(session.Snapshot()),
	}, nil
}

func (s *dayLogService) DeleteItem(ctx context.Context, date string, itemID string, userID string) (domain.DayResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.DayResponse{}, domain.ErrParseUUID
	}
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	if err := session.DeleteItem(ctx, id); err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

func (s *dayLogService) DeleteMeal(ctx context.Context, date string, mealID string, userID string) (domain.DayResponse, error) {
	id, err := uuid.Parse(mealID)
	if err != nil {
		return domain.DayResponse{}, domain.ErrParseUUID
	}
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	if err := session.DeleteMeal(ctx, id); err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

func (s *dayLogService) SetWater(ctx context.Context, date string, req domain.SetWaterRequest, userID string) (domain.DayResponse, error) {
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	if _, err := session.SetWater(ctx, req.WaterIntake); err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

func (s *dayLogService) AdjustWater(ctx context.Context, date string, req domain.AdjustWaterRequest, userID string) (domain.DayResponse, error) {
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	if _, err := session.AdjustWater(ctx, req.Delta); err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

func (s *dayLogService) ToggleLock(ctx context.Context, date string, userID string) (domain.DayResponse, error) {
	session, err := s.open(ctx, date, userID)
	if err != nil {
		return domain.DayResponse{}, err
	}
	if _, err := session.ToggleLock(ctx); err != nil {
		return domain.DayResponse{}, err
	}
	return DayView(session.Snapshot()), nil
}

// GetWeek sums the days of the week holding date. Days with a live session
// report their in-memory totals; days never opened are not created.
func (s *dayLogService) GetWeek(ctx context.Context, date string, userID string) (domain.WeekSummaryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.WeekSummaryResponse{}, domain.ErrParseUUID
	}
	d, err := ParseDate(date)
	if err != nil {
		return domain.WeekSummaryResponse{}, err
	}

	week, err := s.resolver.ResolveWeek(ctx, userUUID, d)
	if err != nil {
		return domain.WeekSummaryResponse{}, err
	}
	days, err := s.repo.ListDaysInRange(ctx, userUUID, DayOf(week.StartDate), DayOf(week.EndDate))
	if err != nil {
		return domain.WeekSummaryResponse{}, err
	}

	res := domain.WeekSummaryResponse{
		ID:        week.ID.String(),
		StartDate: FormatDate(week.StartDate),
		EndDate:   FormatDate(week.EndDate),
		Days:      make([]domain.DaySummary, 0, len(days)),
	}
	totals := make([]nutrition.Totals, 0, len(days))
	for _, day := range days {
		if live, ok := s.registry.Peek(userUUID, day.Date); ok {
			day = live.Snapshot().Day
		}
		res.Days = append(res.Days, domain.DaySummary{
			Date:        FormatDate(day.Date),
			Totals:      day.Totals,
			WaterIntake: day.WaterIntake,
			IsLocked:    day.IsLocked,
		})
		totals = append(totals, nutrition.Totals{Profile: day.Totals, WaterIntake: day.WaterIntake})
	}
	res.Totals = nutrition.SumTotals(totals...)
	return res, nil
}

func (s *dayLogService) Totals(ctx context.Context, date time.Time, userID string) (nutrition.Totals, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nutrition.Totals{}, domain.ErrParseUUID
	}
	session, err := s.registry.Open(ctx, userUUID, date)
	if err != nil {
		return nutrition.Totals{}, err
	}
	day := session.Snapshot().Day
	return nutrition.Totals{Profile: day.Totals, WaterIntake: day.WaterIntake}, nil
}

func DayView(v View) domain.DayResponse {
	res := domain.DayResponse{
		ID:          v.Day.ID.String(),
		Date:        FormatDate(v.Day.Date),
		WeekID:      v.Day.WeekID.String(),
		Totals:      v.Day.Totals,
		WaterIntake: v.Day.WaterIntake,
		IsLocked:    v.Day.IsLocked,
		State:       v.State.String(),
		Meals:       make([]domain.MealResponse, 0, len(v.Meals)),
	}
	for _, m := range v.Meals {
		res.Meals = append(res.Meals, mealView(m))
	}
	return res
}

func mealView(m entities.Meal) domain.MealResponse {
	res := domain.MealResponse{
		ID:     m.ID.String(),
		Name:   m.Name,
		Order:  m.Order,
		Totals: MealTotals(m),
		Items:  make([]domain.LineItemResponse, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		res.Items = append(res.Items, itemView(it))
	}
	return res
}

func itemView(it entities.MealItem) domain.LineItemResponse {
	return lineitem.Response(it.ID, it.Kind, it.SourceID, it.Name, it.ServingText, it.Nutrients, it.Order)
}
