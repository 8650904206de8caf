package ports

import (
	"context"

	"tododapp/internal/domain"
)

// TaskLedger defines the interface for the on-chain task list.
// Mutations are split into submit (Create/Complete/Delete) and Confirm.
type TaskLedger interface {
	// List returns a snapshot of all tasks in ledger order. Read-only.
	List(ctx context.Context) ([]domain.Task, error)

	// Submit operations return as soon as the transaction is accepted
	Create(ctx context.Context, contentAddress string) (domain.TxHandle, error)
	Complete(ctx context.Context, index uint64) (domain.TxHandle, error)
	Delete(ctx context.Context, index uint64) (domain.TxHandle, error)

	// Confirm blocks until the transaction is mined.
	// Reverts and zero-status receipts are reported as *application.TransactionError.
	Confirm(ctx context.Context, tx domain.TxHandle) error
}
