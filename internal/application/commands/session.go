package commands

import (
	"context"
	"fmt"

	"tododapp/internal/application/controller"
	"tododapp/internal/application/session"
	"tododapp/internal/domain"
)

// ConnectResult contains the result of connecting the wallet
type ConnectResult struct {
	Account string
	Message string
}

// ConnectCommand requests wallet access and starts a session
type ConnectCommand struct {
	sessions Connector
}

// NewConnectCommand creates a new ConnectCommand
func NewConnectCommand(sessions Connector) *ConnectCommand {
	return &ConnectCommand{sessions: sessions}
}

// Execute runs the connect command
func (c *ConnectCommand) Execute(ctx context.Context) (*ConnectResult, error) {
	account, err := c.sessions.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect wallet: %w", err)
	}

	st := c.sessions.Status()
	return &ConnectResult{
		Account: account,
		Message: fmt.Sprintf("Connected %s on %s", domain.TxHandle(account).Short(), st.Session.Network),
	}, nil
}

// StatusResult combines session and controller state
type StatusResult struct {
	Session  session.Status
	Snapshot controller.Snapshot
}

// StatusCommand reports the connection and lifecycle state
type StatusCommand struct {
	sessions Connector
	sync     TaskSync
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(sessions Connector, sync TaskSync) *StatusCommand {
	return &StatusCommand{
		sessions: sessions,
		sync:     sync,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	return &StatusResult{
		Session:  c.sessions.Status(),
		Snapshot: c.sync.Snapshot(),
	}, nil
}

// DismissErrorCommand clears both the operation error banner and the network banner
type DismissErrorCommand struct {
	sessions Connector
	sync     TaskSync
}

// NewDismissErrorCommand creates a new DismissErrorCommand
func NewDismissErrorCommand(sessions Connector, sync TaskSync) *DismissErrorCommand {
	return &DismissErrorCommand{
		sessions: sessions,
		sync:     sync,
	}
}

// Execute runs the dismiss error command
func (c *DismissErrorCommand) Execute(ctx context.Context) error {
	c.sync.DismissError()
	c.sessions.DismissNetworkError()
	return nil
}
