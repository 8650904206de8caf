package commands

import (
	"context"
	"fmt"

	"tododapp/internal/application"
)

// DeleteTaskCommand removes a task from the ledger.
// The pinned content is left on the content store.
type DeleteTaskCommand struct {
	sync  TaskSync
	Index string
}

// NewDeleteTaskCommand creates a new DeleteTaskCommand
func NewDeleteTaskCommand(sync TaskSync, index string) *DeleteTaskCommand {
	return &DeleteTaskCommand{
		sync:  sync,
		Index: index,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteTaskCommand) Validate() error {
	_, err := application.ParseIndex("index", c.Index)
	return err
}

// Execute runs the delete task command
func (c *DeleteTaskCommand) Execute(ctx context.Context) (*MutationResult, error) {
	index, err := application.ParseIndex("index", c.Index)
	if err != nil {
		return nil, err
	}

	res, err := c.sync.DeleteTask(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task #%d: %w", index, err)
	}

	return &MutationResult{
		Result:  res,
		Message: describe(res, fmt.Sprintf("Deleted task #%d", index)),
	}, nil
}
