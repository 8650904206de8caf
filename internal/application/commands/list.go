package commands

import (
	"context"
	"time"

	"tododapp/internal/application/controller"
)

// ListTasksResult contains the task list as last synchronized
type ListTasksResult struct {
	Tasks       []controller.TaskView
	RefreshedAt time.Time
}

// ListTasksCommand lists tasks, optionally re-reading the ledger first
type ListTasksCommand struct {
	sync    TaskSync
	Refresh bool
	Pending bool // Only tasks not yet completed
}

// NewListTasksCommand creates a new ListTasksCommand
func NewListTasksCommand(sync TaskSync, refresh bool) *ListTasksCommand {
	return &ListTasksCommand{
		sync:    sync,
		Refresh: refresh,
	}
}

// Execute runs the list tasks command
func (c *ListTasksCommand) Execute(ctx context.Context) (*ListTasksResult, error) {
	if c.Refresh {
		if err := c.sync.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	snap := c.sync.Snapshot()
	tasks := snap.Tasks
	if c.Pending {
		tasks = tasks[:0:0]
		for _, tv := range snap.Tasks {
			if !tv.IsCompleted {
				tasks = append(tasks, tv)
			}
		}
	}

	return &ListTasksResult{
		Tasks:       tasks,
		RefreshedAt: snap.RefreshedAt,
	}, nil
}
