package daylog

import (
	"context"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repo     *fakeRepository
	log      *logging.TestLogger
	metrics  *metrics.Metrics
	resolver *Resolver
	userID   uuid.UUID
}

func newTestEnv() *testEnv {
	repo := newFakeRepository()
	tl := logging.NewTestLogger()
	m := metrics.NewMetrics()
	return &testEnv{
		repo:     repo,
		log:      tl,
		metrics:  m,
		resolver: NewResolver(repo, tl.Logger, m),
		userID:   uuid.New(),
	}
}

func (e *testEnv) session(t *testing.T, day string) *Session {
	t.Helper()
	s := NewSession(e.userID, date(day), e.repo, e.resolver, e.log.Logger, e.metrics)
	require.NoError(t, s.Resolve(context.Background()))
	return s
}
