package daylog

import (
	"context"
	"errors"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errForeignKey = errors.New("violates foreign key constraint")

// fakeRepository is an in-memory DayLogRepository enforcing the same unique
// and foreign keys as the postgres schema.
type fakeRepository struct {
	mu    sync.Mutex
	weeks map[uuid.UUID]entities.Week
	days  map[uuid.UUID]entities.Day
	meals map[uuid.UUID]entities.Meal
	items map[uuid.UUID]entities.MealItem

	fail  map[string]error
	calls map[string]int
	// gates hold an operation until the channel is closed.
	gates map[string]chan struct{}
	// dayMisses makes the next GetDay calls report not-found.
	dayMisses int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		weeks: make(map[uuid.UUID]entities.Week),
		days:  make(map[uuid.UUID]entities.Day),
		meals: make(map[uuid.UUID]entities.Meal),
		items: make(map[uuid.UUID]entities.MealItem),
		fail:  make(map[string]error),
		calls: make(map[string]int),
		gates: make(map[string]chan struct{}),
	}
}

func (f *fakeRepository) enter(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeRepository) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

// hold makes op block until the returned release func is called.
func (f *fakeRepository) hold(op string) (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[op] = gate
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.gates, op)
			f.mu.Unlock()
			close(gate)
		})
	}
}

func (f *fakeRepository) wait(op string) {
	f.mu.Lock()
	gate := f.gates[op]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeRepository) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRepository) dayCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.days)
}

func (f *fakeRepository) storedDay(id uuid.UUID) entities.Day {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days[id]
}

func (f *fakeRepository) GetDay(_ context.Context, userID uuid.UUID, date time.Time) (*entities.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetDay"); err != nil {
		return nil, err
	}
	if f.dayMisses > 0 {
		f.dayMisses--
		return nil, gorm.ErrRecordNotFound
	}
	for _, d := range f.days {
		if d.UserID == userID && d.Date.Equal(date) {
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateDay(_ context.Context, day *entities.Day) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateDay"); err != nil {
		return err
	}
	for _, d := range f.days {
		if d.UserID == day.UserID && d.Date.Equal(day.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if _, ok := f.weeks[day.WeekID]; !ok {
		return errForeignKey
	}
	f.days[day.ID] = *day
	return nil
}

func (f *fakeRepository) ListDaysInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]entities.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDaysInRange"); err != nil {
		return nil, err
	}
	var out []entities.Day
	for _, d := range f.days {
		if d.UserID == userID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeRepository) updateDay(op string, id uuid.UUID, fn func(*entities.Day)) error {
	f.wait(op)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op); err != nil {
		return err
	}
	d, ok := f.days[id]
	if !ok {
		return nil
	}
	fn(&d)
	f.days[id] = d
	return nil
}

func (f *fakeRepository) UpdateDayTotals(_ context.Context, dayID uuid.UUID, totals nutrition.Profile) error {
	return f.updateDay("UpdateDayTotals", dayID, func(d *entities.Day) { d.Totals = totals })
}

func (f *fakeRepository) UpdateWater(_ context.Context, dayID uuid.UUID, water float64) error {
	return f.updateDay("UpdateWater", dayID, func(d *entities.Day) { d.WaterIntake = water })
}

func (f *fakeRepository) UpdateLock(_ context.Context, dayID uuid.UUID, locked bool) error {
	return f.updateDay("UpdateLock", dayID, func(d *entities.Day) { d.IsLocked = locked })
}

func (f *fakeRepository) GetWeekByStart(_ context.Context, userID uuid.UUID, start time.Time) (*entities.Week, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetWeekByStart"); err != nil {
		return nil, err
	}
	for _, w := range f.weeks {
		if w.UserID == userID && w.StartDate.Equal(start) {
			return &w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetWeekContaining(_ context.Context, userID uuid.UUID, date time.Time) (*entities.Week, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetWeekContaining"); err != nil {
		return nil, err
	}
	var found *entities.Week
	for _, w := range f.weeks {
		if w.UserID != userID || w.StartDate.After(date) || w.EndDate.Before(date) {
			continue
		}
		if found == nil || w.StartDate.Before(found.StartDate) {
			w := w
			found = &w
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (f *fakeRepository) CreateWeek(_ context.Context, week *entities.Week) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateWeek"); err != nil {
		return err
	}
	for _, w := range f.weeks {
		if w.UserID == week.UserID && w.StartDate.Equal(week.StartDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	f.weeks[week.ID] = *week
	return nil
}

func (f *fakeRepository) ListMeals(_ context.Context, dayID uuid.UUID) ([]entities.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListMeals"); err != nil {
		return nil, err
	}
	var meals []entities.Meal
	for _, m := range f.meals {
		if m.DayID != dayID {
			continue
		}
		m.Items = nil
		for _, it := range f.items {
			if it.MealID == m.ID {
				m.Items = append(m.Items, it)
			}
		}
		sort.Slice(m.Items, func(i, j int) bool { return m.Items[i].Order < m.Items[j].Order })
		meals = append(meals, m)
	}
	sort.Slice(meals, func(i, j int) bool { return meals[i].Order < meals[j].Order })
	return meals, nil
}

func (f *fakeRepository) CreateMeal(_ context.Context, meal *entities.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateMeal"); err != nil {
		return err
	}
	m := *meal
	m.Items = nil
	f.meals[m.ID] = m
	return nil
}

func (f *fakeRepository) DeleteMeal(_ context.Context, mealID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteMeal"); err != nil {
		return err
	}
	for _, it := range f.items {
		if it.MealID == mealID {
			return errForeignKey
		}
	}
	delete(f.meals, mealID)
	return nil
}

func (f *fakeRepository) CreateMealItem(_ context.Context, item *entities.MealItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateMealItem"); err != nil {
		return err
	}
	if _, ok := f.meals[item.MealID]; !ok {
		return errForeignKey
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeRepository) DeleteMealItem(_ context.Context, itemID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteMealItem"); err != nil {
		return err
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeRepository) DeleteMealItems(_ context.Context, mealID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteMealItems"); err != nil {
		return err
	}
	for id, it := range f.items {
		if it.MealID == mealID {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeRepository) ListWeeks(_ context.Context) ([]entities.Week, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListWeeks"); err != nil {
		return nil, err
	}
	out := make([]entities.Week, 0, len(f.weeks))
	for _, w := range f.weeks {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeRepository) ListDaysByWeek(_ context.Context, weekID uuid.UUID) ([]entities.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDaysByWeek"); err != nil {
		return nil, err
	}
	var out []entities.Day
	for _, d := range f.days {
		if d.WeekID == weekID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeRepository) MoveDay(_ context.Context, dayID, weekID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("MoveDay"); err != nil {
		return err
	}
	d := f.days[dayID]
	d.WeekID = weekID
	f.days[dayID] = d
	return nil
}

func (f *fakeRepository) DeleteWeek(_ context.Context, weekID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteWeek"); err != nil {
		return err
	}
	for _, d := range f.days {
		if d.WeekID == weekID {
			return errForeignKey
		}
	}
	delete(f.weeks, weekID)
	return nil
}

// seedWeek stores a week directly, bypassing the unique check.
func (f *fakeRepository) seedWeek(userID uuid.UUID, start time.Time) entities.Week {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := entities.Week{ID: uuid.New(), UserID: userID, StartDate: start, EndDate: start.AddDate(0, 0, 6)}
	f.weeks[w.ID] = w
	return w
}

func (f *fakeRepository) seedDay(day entities.Day) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days[day.ID] = day
}

func (f *fakeRepository) seedMeal(meal entities.Meal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range meal.Items {
		f.items[it.ID] = it
	}
	meal.Items = nil
	f.meals[meal.ID] = meal
}
