package commands

import (
	"context"
	"fmt"

	"tododapp/internal/application"
	"tododapp/internal/application/controller"
	"tododapp/internal/domain"
)

// MutationResult contains the result of a create, complete or delete lifecycle
type MutationResult struct {
	Result  *controller.Result
	Message string
}

// Rejected reports whether the user declined the transaction in the wallet
func (r *MutationResult) Rejected() bool {
	return r.Result != nil && r.Result.Outcome == domain.StateRejected
}

// CreateTaskCommand pins task text and records it on the ledger
type CreateTaskCommand struct {
	sync    TaskSync
	Content string
}

// NewCreateTaskCommand creates a new CreateTaskCommand
func NewCreateTaskCommand(sync TaskSync, content string) *CreateTaskCommand {
	return &CreateTaskCommand{
		sync:    sync,
		Content: content,
	}
}

// Validate checks if the create operation is valid
func (c *CreateTaskCommand) Validate() error {
	return application.ValidateContent(c.Content)
}

// Execute runs the create task command
func (c *CreateTaskCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := c.sync.CreateTask(ctx, c.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &MutationResult{
		Result:  res,
		Message: describe(res, fmt.Sprintf("Created task %s", res.ContentAddress)),
	}, nil
}

// describe returns the message for a finished lifecycle
func describe(res *controller.Result, applied string) string {
	if res.Outcome == domain.StateRejected {
		return "Transaction rejected in wallet"
	}
	if res.TxHandle != "" {
		return fmt.Sprintf("%s (tx %s)", applied, res.TxHandle.Short())
	}
	return applied
}
