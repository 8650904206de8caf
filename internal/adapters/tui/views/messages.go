package views

import (
	"tododapp/internal/application/commands"
	"tododapp/internal/application/controller"
	"tododapp/internal/application/session"
)

// Messages for view switching
type SwitchToTasksMsg struct{}

type SwitchToCreateMsg struct{}

type SwitchToDeleteMsg struct {
	Task controller.TaskView
}

type SwitchToHelpMsg struct{}

// Intents handled by the app, which owns the commands

type ConnectMsg struct{}

type CreateTaskMsg struct {
	Content string
}

type CompleteTaskMsg struct {
	Index uint64
}

type DeleteTaskMsg struct {
	Index uint64
}

type RefreshMsg struct{}

type DismissErrorMsg struct{}

type CopyAddressMsg struct {
	Address string
}

type OpenAddressMsg struct {
	Address string
}

// ComposeMsg requests writing task text in $EDITOR
type ComposeMsg struct {
	Initial string
}

// StatusMsg carries fresh controller and session state
type StatusMsg struct {
	Snapshot controller.Snapshot
	Session  session.Status
}

// MutationDoneMsg reports a finished create, complete or delete
type MutationDoneMsg struct {
	Result *commands.MutationResult
	Err    error
}

// ConnectDoneMsg reports the outcome of a wallet connection attempt
type ConnectDoneMsg struct {
	Result *commands.ConnectResult
	Err    error
}

// FlashMsg shows a one-line message on the current view
type FlashMsg struct {
	Text  string
	IsErr bool
}
