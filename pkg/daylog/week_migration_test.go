package daylog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nutrilog-backend/entities"
)

func TestWeekMigrator(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	legacy := env.repo.seedWeek(env.userID, date("2024-03-13")) // Wednesday
	wed := entities.Day{ID: uuid.New(), UserID: env.userID, Date: date("2024-03-13"), WeekID: legacy.ID}
	sun := entities.Day{ID: uuid.New(), UserID: env.userID, Date: date("2024-03-17"), WeekID: legacy.ID}
	env.repo.seedDay(wed)
	env.repo.seedDay(sun)
	canonical := env.repo.seedWeek(env.userID, date("2024-03-10"))

	m := NewWeekMigrator(env.repo, env.resolver, env.log.Logger)

	dry, err := m.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, MigrationReport{WeeksScanned: 2, LegacyWeeks: 1, DaysMoved: 2, WeeksDeleted: 1}, dry)
	assert.Zero(t, env.repo.callCount("MoveDay"))

	report, err := m.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, MigrationReport{WeeksScanned: 2, LegacyWeeks: 1, DaysMoved: 2, WeeksDeleted: 1}, report)

	assert.Equal(t, canonical.ID, env.repo.storedDay(wed.ID).WeekID)
	next := env.repo.storedDay(sun.ID).WeekID
	assert.NotEqual(t, legacy.ID, next)
	week, err := env.repo.GetWeekByStart(ctx, env.userID, date("2024-03-17"))
	require.NoError(t, err)
	assert.Equal(t, week.ID, next)

	again, err := m.Run(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, again.LegacyWeeks)
	assert.Equal(t, 2, again.WeeksScanned)
}
