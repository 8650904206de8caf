package commands

import (
	"context"
	"fmt"

	"tododapp/internal/application"
)

// CompleteTaskCommand marks a task completed
type CompleteTaskCommand struct {
	sync  TaskSync
	Index string
}

// NewCompleteTaskCommand creates a new CompleteTaskCommand
func NewCompleteTaskCommand(sync TaskSync, index string) *CompleteTaskCommand {
	return &CompleteTaskCommand{
		sync:  sync,
		Index: index,
	}
}

// Validate checks if the complete operation is valid
func (c *CompleteTaskCommand) Validate() error {
	_, err := application.ParseIndex("index", c.Index)
	return err
}

// Execute runs the complete task command
func (c *CompleteTaskCommand) Execute(ctx context.Context) (*MutationResult, error) {
	index, err := application.ParseIndex("index", c.Index)
	if err != nil {
		return nil, err
	}

	res, err := c.sync.CompleteTask(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task #%d: %w", index, err)
	}

	return &MutationResult{
		Result:  res,
		Message: describe(res, fmt.Sprintf("Completed task #%d", index)),
	}, nil
}
