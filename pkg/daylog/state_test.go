package daylog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		want State
	}{
		{Uninitialized, EventResolve, Resolved},
		{Resolved, EventMutate, Stale},
		{Stale, EventMutate, Stale},
		{Stale, EventPersisted, Resolved},
		{Stale, EventPersistFailed, Reconciling},
		{Reconciling, EventRefetched, Resolved},
		{Reconciling, EventRefetchFailed, Stale},
		{Reconciling, EventMutate, Stale},
		{Resolved, EventPersistFailed, Reconciling},
		{Resolved, EventRefetched, Resolved},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_Invalid(t *testing.T) {
	invalid := []struct {
		from State
		ev   Event
	}{
		{Uninitialized, EventMutate},
		{Uninitialized, EventPersisted},
		{Uninitialized, EventRefetched},
		{Stale, EventResolve},
		{Reconciling, EventResolve},
	}

	for _, tt := range invalid {
		got, err := Transition(tt.from, tt.ev)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, tt.from, got)
	}
}

func TestTransition_EveryStateHandlesFailurePath(t *testing.T) {
	for _, s := range []State{Resolved, Stale, Reconciling} {
		for _, e := range []Event{EventMutate, EventPersisted, EventPersistFailed, EventRefetched, EventRefetchFailed} {
			_, err := Transition(s, e)
			assert.NoError(t, err, "%s on %s", e, s)
		}
	}
}
