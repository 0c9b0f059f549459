package daylog

import (
	"context"
	"errors"
	"fmt"
	"nutrilog-backend/entities"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver maps a (user, date) onto its persisted day, creating the week and
// the day on first access.
type Resolver struct {
	repo    DayLogRepository
	log     *logging.Logger
	metrics *metrics.Metrics
}

func NewResolver(repo DayLogRepository, log *logging.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{repo: repo, log: log.Named("resolver"), metrics: m}
}

// GetOrCreateDay never reports not-found: a missing day is created with zero
// totals under its week.
func (r *Resolver) GetOrCreateDay(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Day, Outcome, error) {
	date = DayOf(date)

	day, err := r.repo.GetDay(ctx, userID, date)
	if err == nil {
		return day, Existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Existing, fmt.Errorf("read day: %w", err)
	}

	week, err := r.ResolveWeek(ctx, userID, date)
	if err != nil {
		return nil, Created, err
	}

	day, outcome, err := CreateOrGet(ctx,
		func(ctx context.Context) (*entities.Day, error) {
			d := &entities.Day{
				ID:     uuid.New(),
				UserID: userID,
				Date:   date,
				WeekID: week.ID,
			}
			return d, r.repo.CreateDay(ctx, d)
		},
		func(ctx context.Context) (*entities.Day, error) {
			return r.repo.GetDay(ctx, userID, date)
		},
	)
	if err != nil {
		return nil, outcome, fmt.Errorf("create day: %w", err)
	}
	if outcome == Existing {
		r.recovered(ctx, "day", userID, date)
	}
	return day, outcome, nil
}

// ResolveWeek finds the week holding date by exact start, then by range, and
// creates the canonical week when neither exists.
func (r *Resolver) ResolveWeek(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Week, error) {
	start, _ := WeekBounds(date)

	week, err := r.repo.GetWeekByStart(ctx, userID, start)
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("read week: %w", err)
	}

	week, err = r.repo.GetWeekContaining(ctx, userID, DayOf(date))
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("read week by range: %w", err)
	}

	return r.CanonicalWeek(ctx, userID, date)
}

// CanonicalWeek gets or creates the Sunday-start week of date, ignoring any
// legacy week whose range also covers it.
func (r *Resolver) CanonicalWeek(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.Week, error) {
	start, end := WeekBounds(date)

	week, err := r.repo.GetWeekByStart(ctx, userID, start)
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("read week: %w", err)
	}

	week, outcome, err := CreateOrGet(ctx,
		func(ctx context.Context) (*entities.Week, error) {
			w := &entities.Week{
				ID:        uuid.New(),
				UserID:    userID,
				StartDate: start,
				EndDate:   end,
			}
			return w, r.repo.CreateWeek(ctx, w)
		},
		func(ctx context.Context) (*entities.Week, error) {
			return r.repo.GetWeekByStart(ctx, userID, start)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create week: %w", err)
	}
	if outcome == Existing {
		r.recovered(ctx, "week", userID, start)
	}
	return week, nil
}

func (r *Resolver) recovered(ctx context.Context, entity string, userID uuid.UUID, date time.Time) {
	r.metrics.DuplicateRecoveredTotal.WithLabelValues(entity).Inc()
	r.log.Debug(ctx, "lost create race, using existing row",
		zap.String("entity", entity),
		zap.Stringer("user_id", userID),
		zap.String("date", FormatDate(date)),
	)
}
