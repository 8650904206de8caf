package commands

import (
	"context"

	"tododapp/internal/application/controller"
	"tododapp/internal/application/session"
)

// TaskSync is the part of the sync controller the commands drive
type TaskSync interface {
	Snapshot() controller.Snapshot
	Refresh(ctx context.Context) error
	CreateTask(ctx context.Context, text string) (*controller.Result, error)
	CompleteTask(ctx context.Context, index uint64) (*controller.Result, error)
	DeleteTask(ctx context.Context, index uint64) (*controller.Result, error)
	DismissError()
}

// Connector is the part of the session manager the commands drive
type Connector interface {
	Connect(ctx context.Context) (string, error)
	Status() session.Status
	DismissNetworkError()
}

var (
	_ TaskSync  = (*controller.Controller)(nil)
	_ Connector = (*session.Manager)(nil)
)
