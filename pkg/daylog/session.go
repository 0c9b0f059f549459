package daylog

import (
	"context"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"nutrilog-backend/pkg/nutrition"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session holds the in-memory view of one user's day. Mutations apply to
// memory first and are persisted in the background; a failed write replaces
// the view with a fresh read from the store.
type Session struct {
	userID uuid.UUID
	date   time.Time

	repo     DayLogRepository
	resolver *Resolver
	log      *logging.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	state   State
	day     entities.Day
	meals   []entities.Meal
	pending int
	// gen counts re-fetches. A write that succeeds after a re-fetch dropped its
	// optimistic change triggers another re-fetch.
	gen uint64
	// tail is closed when the most recently queued background job finishes.
	tail chan struct{}
	// inflight counts queued background jobs, including lock and heal writes
	// that are not tracked by pending.
	inflight atomic.Int32

	wg sync.WaitGroup
}

// View is a copy of a session's state.
type View struct {
	Day   entities.Day
	Meals []entities.Meal
	State State
}

func NewSession(userID uuid.UUID, date time.Time, repo DayLogRepository, resolver *Resolver, log *logging.Logger, m *metrics.Metrics) *Session {
	return &Session{
		userID:   userID,
		date:     DayOf(date),
		repo:     repo,
		resolver: resolver,
		log:      log.Named("session").With(zap.Stringer("user_id", userID), zap.String("date", FormatDate(DayOf(date)))),
		metrics:  m,
		state:    Uninitialized,
	}
}

// Resolve loads or creates the day. It is a no-op once resolved.
func (s *Session) Resolve(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Uninitialized {
		return nil
	}

	day, _, err := s.resolver.GetOrCreateDay(ctx, s.userID, s.date)
	if err != nil {
		return err
	}
	meals, err := s.repo.ListMeals(ctx, day.ID)
	if err != nil {
		return err
	}
	s.replace(ctx, *day, meals)
	return s.fire(ctx, EventResolve)
}

// State returns the current reconciliation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the number of unconfirmed item writes.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Snapshot returns a copy of the day as currently held in memory.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{Day: s.day, Meals: cloneMeals(s.meals), State: s.state}
}

// Busy reports whether any background job is queued or running.
func (s *Session) Busy() bool {
	return s.inflight.Load() > 0
}

// Wait blocks until background writes and re-fetches have finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// AddMeal appends an empty meal.
func (s *Session) AddMeal(ctx context.Context, name string) (entities.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return entities.Meal{}, err
	}
	if err := s.fire(ctx, EventMutate); err != nil {
		return entities.Meal{}, err
	}

	meal := s.newMeal(name)
	s.meals = append(s.meals, meal)

	row := meal
	s.persist(ctx, "create_meal", func(ctx context.Context) error {
		return s.repo.CreateMeal(ctx, &row)
	})
	return meal, nil
}

// AddItem appends item to the meal identified by mealID, or to the meal
// called mealName which is created when absent. ID, ownership and order are
// assigned here.
func (s *Session) AddItem(ctx context.Context, mealID *uuid.UUID, mealName string, item entities.MealItem) (entities.MealItem, entities.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return entities.MealItem{}, entities.Meal{}, err
	}

	idx := -1
	switch {
	case mealID != nil:
		idx = s.mealIndex(*mealID)
		if idx < 0 {
			return entities.MealItem{}, entities.Meal{}, domain.ErrMealNotFound
		}
	case strings.TrimSpace(mealName) != "":
		idx = s.mealIndexByName(mealName)
	default:
		return entities.MealItem{}, entities.Meal{}, domain.ErrMealNameRequired
	}
	if err := s.fire(ctx, EventMutate); err != nil {
		return entities.MealItem{}, entities.Meal{}, err
	}

	var newMeal *entities.Meal
	if idx < 0 {
		m := s.newMeal(mealName)
		s.meals = append(s.meals, m)
		idx = len(s.meals) - 1
		newMeal = &m
	}
	meal := &s.meals[idx]

	item.ID = uuid.New()
	item.MealID = meal.ID
	item.UserID = s.userID
	item.Order = nextItemOrder(meal.Items)
	meal.Items = append(meal.Items, item)
	totals := s.recompute()

	row, dayID := item, s.day.ID
	s.persist(ctx, "add_item", func(ctx context.Context) error {
		if newMeal != nil {
			if err := s.repo.CreateMeal(ctx, newMeal); err != nil {
				return err
			}
		}
		if err := s.repo.CreateMealItem(ctx, &row); err != nil {
			return err
		}
		return s.repo.UpdateDayTotals(ctx, dayID, totals)
	})

	out := *meal
	out.Items = append([]entities.MealItem(nil), meal.Items...)
	return item, out, nil
}

// DeleteItem removes a line item.
func (s *Session) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}

	mi, ii := s.itemIndex(itemID)
	if mi < 0 {
		return domain.ErrMealItemNotFound
	}
	if err := s.fire(ctx, EventMutate); err != nil {
		return err
	}

	items := s.meals[mi].Items
	s.meals[mi].Items = append(items[:ii:ii], items[ii+1:]...)
	totals, dayID := s.recompute(), s.day.ID

	s.persist(ctx, "delete_item", func(ctx context.Context) error {
		if err := s.repo.DeleteMealItem(ctx, itemID); err != nil {
			return err
		}
		return s.repo.UpdateDayTotals(ctx, dayID, totals)
	})
	return nil
}

// DeleteMeal removes a meal and its items. The items are deleted from the
// store first; the meal row is kept when that fails.
func (s *Session) DeleteMeal(ctx context.Context, mealID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(); err != nil {
		return err
	}

	idx := s.mealIndex(mealID)
	if idx < 0 {
		return domain.ErrMealNotFound
	}
	if err := s.fire(ctx, EventMutate); err != nil {
		return err
	}

	s.meals = append(s.meals[:idx:idx], s.meals[idx+1:]...)
	totals, dayID := s.recompute(), s.day.ID

	s.persist(ctx, "delete_meal", func(ctx context.Context) error {
		if err := s.repo.DeleteMealItems(ctx, mealID); err != nil {
			return err
		}
		if err := s.repo.DeleteMeal(ctx, mealID); err != nil {
			return err
		}
		return s.repo.UpdateDayTotals(ctx, dayID, totals)
	})
	return nil
}

// SetWater replaces the day's water intake. Allowed on locked days.
func (s *Session) SetWater(ctx context.Context, value float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setWater(ctx, value)
}

// AdjustWater adds delta to the day's water intake.
func (s *Session) AdjustWater(ctx context.Context, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setWater(ctx, s.day.WaterIntake+delta)
}

func (s *Session) setWater(ctx context.Context, value float64) (float64, error) {
	value = nutrition.RoundTenth(value)
	if value == 0 {
		value = 0 // drop the sign of -0
	}
	if value < 0 {
		return s.day.WaterIntake, domain.ErrNegativeWater
	}
	if err := s.fire(ctx, EventMutate); err != nil {
		return s.day.WaterIntake, err
	}
	s.day.WaterIntake = value

	dayID := s.day.ID
	s.persist(ctx, "update_water", func(ctx context.Context) error {
		return s.repo.UpdateWater(ctx, dayID, value)
	})
	return value, nil
}

// ToggleLock flips the lock flag.
func (s *Session) ToggleLock(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, !s.day.IsLocked)
}

// SetLocked sets the lock flag. The write is fire-and-forget: a failure is
// logged and the optimistic value is kept.
func (s *Session) SetLocked(ctx context.Context, locked bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, locked)
}

func (s *Session) setLocked(ctx context.Context, locked bool) (bool, error) {
	if s.state == Uninitialized {
		return false, ErrInvalidTransition
	}
	s.day.IsLocked = locked

	dayID := s.day.ID
	s.background(ctx, func(ctx context.Context) {
		if err := s.repo.UpdateLock(ctx, dayID, locked); err != nil {
			s.metrics.PersistFailuresTotal.WithLabelValues("update_lock").Inc()
			s.log.Error(ctx, "persist lock failed", zap.Bool("locked", locked), zap.Error(err))
		}
	})
	return locked, nil
}

// Refresh re-reads the day from the store.
func (s *Session) Refresh(ctx context.Context) error {
	return s.refetch(ctx)
}

// mutable must be called with mu held.
func (s *Session) mutable() error {
	if s.state == Uninitialized {
		return ErrInvalidTransition
	}
	if s.day.IsLocked {
		return domain.ErrDayLocked
	}
	return nil
}

// background queues job behind the previously queued one, detached from
// request cancellation. Jobs of one session run one at a time in the order
// they were queued. Must be called with mu held.
func (s *Session) background(ctx context.Context, job func(context.Context)) {
	prev, done := s.tail, make(chan struct{})
	s.tail = done
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	s.inflight.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inflight.Add(-1)
		defer close(done)
		if prev != nil {
			<-prev
		}
		job(bg)
	}()
}

// persist queues a write. On failure the day is re-fetched, discarding
// optimistic changes. Must be called with mu held.
func (s *Session) persist(ctx context.Context, op string, fn func(context.Context) error) {
	s.pending++
	gen := s.gen

	s.background(ctx, func(bg context.Context) {
		err := fn(bg)

		s.mu.Lock()
		s.pending--
		if err != nil {
			s.metrics.PersistFailuresTotal.WithLabelValues(op).Inc()
			s.log.Error(bg, "persist failed, re-fetching day", zap.String("op", op), zap.Error(err))
			_ = s.fire(bg, EventPersistFailed)
			s.mu.Unlock()
			_ = s.refetch(bg)
			return
		}
		if s.pending == 0 {
			_ = s.fire(bg, EventPersisted)
		}
		dropped := s.gen != gen
		s.mu.Unlock()

		if dropped {
			_ = s.refetch(bg)
		}
	})
}

func (s *Session) refetch(ctx context.Context) error {
	day, err := s.repo.GetDay(ctx, s.userID, s.date)
	var meals []entities.Meal
	if err == nil {
		meals, err = s.repo.ListMeals(ctx, day.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.metrics.RefetchesTotal.WithLabelValues("failed").Inc()
		s.log.Error(ctx, "re-fetch failed", zap.Error(err))
		_ = s.fire(ctx, EventRefetchFailed)
		return err
	}
	s.metrics.RefetchesTotal.WithLabelValues("ok").Inc()
	s.gen++
	s.replace(ctx, *day, meals)
	return s.fire(ctx, EventRefetched)
}

// replace installs a fresh read. Persisted totals that disagree with the
// items are rewritten in the background. Must be called with mu held.
func (s *Session) replace(ctx context.Context, day entities.Day, meals []entities.Meal) {
	s.day = day
	s.meals = meals
	persisted := day.Totals
	computed := s.recompute()
	if computed == persisted {
		return
	}

	s.metrics.TotalsHealedTotal.Inc()
	s.log.Warn(ctx, "persisted totals diverge from items, healing",
		zap.Float64("persisted_calories", persisted.Calories),
		zap.Float64("computed_calories", computed.Calories),
	)
	dayID := day.ID
	s.background(ctx, func(ctx context.Context) {
		if err := s.repo.UpdateDayTotals(ctx, dayID, computed); err != nil {
			s.log.Warn(ctx, "heal totals failed", zap.Error(err))
		}
	})
}

// recompute derives the day totals from the in-memory items. Must be called
// with mu held.
func (s *Session) recompute() nutrition.Profile {
	s.day.Totals = MealsTotals(s.meals)
	return s.day.Totals
}

func (s *Session) fire(ctx context.Context, e Event) error {
	next, err := Transition(s.state, e)
	if err != nil {
		s.log.Warn(ctx, "rejected transition", zap.Stringer("state", s.state), zap.Stringer("event", e))
		return err
	}
	s.state = next
	return nil
}

func (s *Session) newMeal(name string) entities.Meal {
	order := 0
	for _, m := range s.meals {
		if m.Order >= order {
			order = m.Order + 1
		}
	}
	return entities.Meal{
		ID:     uuid.New(),
		DayID:  s.day.ID,
		UserID: s.userID,
		Name:   strings.TrimSpace(name),
		Order:  order,
	}
}

func (s *Session) mealIndex(id uuid.UUID) int {
	for i := range s.meals {
		if s.meals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) mealIndexByName(name string) int {
	name = strings.TrimSpace(name)
	for i := range s.meals {
		if strings.EqualFold(s.meals[i].Name, name) {
			return i
		}
	}
	return -1
}

func (s *Session) itemIndex(id uuid.UUID) (int, int) {
	for mi := range s.meals {
		for ii := range s.meals[mi].Items {
			if s.meals[mi].Items[ii].ID == id {
				return mi, ii
			}
		}
	}
	return -1, -1
}

// MealsTotals sums every item of every meal.
func MealsTotals(meals []entities.Meal) nutrition.Profile {
	var profiles []nutrition.Profile
	for _, m := range meals {
		for _, it := range m.Items {
			profiles = append(profiles, it.Nutrients)
		}
	}
	return nutrition.Aggregate(profiles...)
}

func MealTotals(m entities.Meal) nutrition.Profile {
	profiles := make([]nutrition.Profile, len(m.Items))
	for i, it := range m.Items {
		profiles[i] = it.Nutrients
	}
	return nutrition.Aggregate(profiles...)
}

// nextItemOrder is max+1 over the current items. Deletions leave gaps.
func nextItemOrder(items []entities.MealItem) int {
	order := 0
	for _, it := range items {
		if it.Order >= order {
			order = it.Order + 1
		}
	}
	return order
}

func cloneMeals(meals []entities.Meal) []entities.Meal {
	out := make([]entities.Meal, len(meals))
	for i, m := range meals {
		out[i] = m
		out[i].Items = append([]entities.MealItem(nil), m.Items...)
	}
	return out
}
