package domain

import (
	"fmt"
	"time"
)

// LifecycleState is the state of the mutating-operation lifecycle
type LifecycleState int

const (
	StateIdle LifecycleState = iota
	StateSubmitting
	StateAwaitingConfirmation
	StateApplied
	StateFailed
	StateRejected
)

func (s LifecycleState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingConfirmation:
		return "awaiting confirmation"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// InFlight reports whether the state occupies the single in-flight slot
func (s LifecycleState) InFlight() bool {
	return s == StateSubmitting || s == StateAwaitingConfirmation
}

// Terminal reports whether the state ends a lifecycle
func (s LifecycleState) Terminal() bool {
	return s == StateApplied || s == StateFailed || s == StateRejected
}

// OperationKind identifies which mutation a lifecycle performs
type OperationKind int

const (
	OpCreate OperationKind = iota
	OpComplete
	OpDelete
)

func (k OperationKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpComplete:
		return "complete"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Pending describes the mutation currently occupying the in-flight slot
type Pending struct {
	ID        string // Operation id, for logs
	Kind      OperationKind
	Index     uint64   // Target task index (complete/delete only)
	TxHandle  TxHandle // Empty until the ledger accepted the submission
	StartedAt time.Time
}

// Describe returns a short human readable summary, e.g. "complete #3"
func (p Pending) Describe() string {
	if p.Kind == OpCreate {
		return p.Kind.String()
	}
	return fmt.Sprintf("%s #%d", p.Kind, p.Index)
}
