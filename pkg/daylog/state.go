package daylog

import (
	"errors"
	"fmt"
)

// State is the reconciliation state of one (user, date) session.
type State int

const (
	Uninitialized State = iota
	Resolved
	Stale
	Reconciling
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resolved:
		return "resolved"
	case Stale:
		return "stale"
	case Reconciling:
		return "reconciling"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives a transition of the day state machine.
type Event int

const (
	// EventResolve: the day was read or created.
	EventResolve Event = iota
	// EventMutate: an optimistic change was applied in memory.
	EventMutate
	// EventPersisted: every pending background write succeeded.
	EventPersisted
	// EventPersistFailed: a background write failed; a re-fetch follows.
	EventPersistFailed
	// EventRefetched: in-memory state was replaced from the store.
	EventRefetched
	// EventRefetchFailed: the re-fetch itself failed.
	EventRefetchFailed
)

func (e Event) String() string {
	switch e {
	case EventResolve:
		return "resolve"
	case EventMutate:
		return "mutate"
	case EventPersisted:
		return "persisted"
	case EventPersistFailed:
		return "persist_failed"
	case EventRefetched:
		return "refetched"
	case EventRefetchFailed:
		return "refetch_failed"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

var ErrInvalidTransition = errors.New("invalid day log state transition")

var transitions = map[State]map[Event]State{
	Uninitialized: {
		EventResolve: Resolved,
	},
	Resolved: {
		EventResolve:       Resolved,
		EventMutate:        Stale,
		EventPersisted:     Resolved,
		EventPersistFailed: Reconciling,
		EventRefetched:     Resolved,
		EventRefetchFailed: Stale,
	},
	Stale: {
		EventMutate:        Stale,
		EventPersisted:     Resolved,
		EventPersistFailed: Reconciling,
		EventRefetched:     Resolved,
		EventRefetchFailed: Stale,
	},
	Reconciling: {
		EventMutate:        Stale,
		EventPersisted:     Reconciling,
		EventPersistFailed: Reconciling,
		EventRefetched:     Resolved,
		EventRefetchFailed: Stale,
	},
}

// Transition returns the state reached from s on e.
func Transition(s State, e Event) (State, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}
