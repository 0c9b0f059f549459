package daylog

import (
	"context"
	"fmt"
	"nutrilog-backend/internal/logging"

	"go.uber.org/zap"
)

type MigrationReport struct {
	WeeksScanned int `json:"weeks_scanned"`
	LegacyWeeks  int `json:"legacy_weeks"`
	DaysMoved    int `json:"days_moved"`
	WeeksDeleted int `json:"weeks_deleted"`
}

// WeekMigrator re-parents days of weeks that do not start on Sunday under
// their canonical week and deletes the emptied legacy week.
type WeekMigrator struct {
	repo     DayLogRepository
	resolver *Resolver
	log      *logging.Logger
}

func NewWeekMigrator(repo DayLogRepository, resolver *Resolver, log *logging.Logger) *WeekMigrator {
	return &WeekMigrator{repo: repo, resolver: resolver, log: log.Named("week_migration")}
}

// Run migrates every legacy week. With dryRun set nothing is written and the
// report counts what would change. Running it twice is a no-op.
func (m *WeekMigrator) Run(ctx context.Context, dryRun bool) (MigrationReport, error) {
	var report MigrationReport

	weeks, err := m.repo.ListWeeks(ctx)
	if err != nil {
		return report, fmt.Errorf("list weeks: %w", err)
	}
	report.WeeksScanned = len(weeks)

	for _, week := range weeks {
		if IsCanonicalStart(week.StartDate) {
			continue
		}
		report.LegacyWeeks++

		days, err := m.repo.ListDaysByWeek(ctx, week.ID)
		if err != nil {
			return report, fmt.Errorf("list days of week %s: %w", week.ID, err)
		}
		if dryRun {
			report.DaysMoved += len(days)
			report.WeeksDeleted++
			continue
		}

		for _, day := range days {
			target, err := m.resolver.CanonicalWeek(ctx, day.UserID, day.Date)
			if err != nil {
				return report, fmt.Errorf("canonical week for day %s: %w", day.ID, err)
			}
			if err := m.repo.MoveDay(ctx, day.ID, target.ID); err != nil {
				return report, fmt.Errorf("move day %s: %w", day.ID, err)
			}
			report.DaysMoved++
		}

		if err := m.repo.DeleteWeek(ctx, week.ID); err != nil {
			return report, fmt.Errorf("delete week %s: %w", week.ID, err)
		}
		report.WeeksDeleted++
		m.log.Info(ctx, "migrated legacy week",
			zap.Stringer("week_id", week.ID),
			zap.String("start_date", FormatDate(week.StartDate)),
			zap.Int("days", len(days)),
		)
	}
	return report, nil
}
