// Package session owns the wallet connection and tells listeners when a session
// starts or ends. Exactly one session exists at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tododapp/internal/application"
	"tododapp/internal/domain"
	"tododapp/internal/ports"
)

// Listener is notified of session transitions
type Listener interface {
	OnSessionStart(s domain.Session)
	OnSessionEnd()
}

// Status is a copy of the manager state
type Status struct {
	Connected    bool
	Session      domain.Session
	NetworkError error
}

// Manager connects to the wallet, keeps it on the configured network and
// rebuilds the session whenever the selected account changes
type Manager struct {
	wallet    ports.Wallet
	network   domain.Network
	listeners []Listener
	logger    *log.Logger
	now       func() time.Time

	// transition serializes start/end so listeners never see them interleaved
	transition sync.Mutex

	mu         sync.Mutex
	session    *domain.Session
	networkErr error
}

// NewManager creates a manager. wallet may be nil when no wallet is configured.
func NewManager(wallet ports.Wallet, network domain.Network, logger *log.Logger, listeners ...Listener) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		wallet:    wallet,
		network:   network,
		listeners: listeners,
		logger:    logger,
		now:       time.Now,
	}
}

// Status returns the current connection state
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{NetworkError: m.networkErr}
	if m.session != nil {
		st.Connected = true
		st.Session = *m.session
	}
	return st
}

// NetworkError returns the last network failure seen while connecting
func (m *Manager) NetworkError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.networkErr
}

// DismissNetworkError clears the connect-screen banner
func (m *Manager) DismissNetworkError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.networkErr = nil
}

// Connect requests wallet access, moves the wallet to the configured network and starts a session
func (m *Manager) Connect(ctx context.Context) (string, error) {
	if m.wallet == nil {
		return "", application.ErrWalletUnavailable
	}

	accounts, err := m.wallet.RequestAccounts(ctx)
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 || accounts[0] == "" {
		return "", fmt.Errorf("%w: wallet returned no accounts", application.ErrWalletUnavailable)
	}
	account := accounts[0]

	m.transition.Lock()
	defer m.transition.Unlock()

	m.endLocked()
	if err := m.ensureNetwork(ctx); err != nil {
		return "", err
	}
	m.startLocked(account)
	return account, nil
}

// EnsureNetwork switches the wallet to the expected chain if it is elsewhere
func (m *Manager) EnsureNetwork(ctx context.Context, expected uint64) error {
	if m.wallet == nil {
		return application.ErrWalletUnavailable
	}

	current, err := m.wallet.ChainID(ctx)
	if err != nil {
		return err
	}
	if current == expected {
		return nil
	}

	m.logger.Printf("wallet on chain %d, switching to %d", current, expected)
	return m.wallet.SwitchChain(ctx, expected)
}

// ensureNetwork records any failure as the connect-screen network error
func (m *Manager) ensureNetwork(ctx context.Context) error {
	err := m.EnsureNetwork(ctx, m.network.ChainID)

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err == nil:
		m.networkErr = nil
	case errors.Is(err, application.ErrUserRejected):
		// Declining the switch is not shown as a failure
	default:
		m.networkErr = err
		m.logger.Printf("network check failed: %v", err)
	}
	return err
}

// HandleAccountsChanged tears down the current session and, when an account
// is selected, starts a new one for it
func (m *Manager) HandleAccountsChanged(ctx context.Context, account string) error {
	m.transition.Lock()
	defer m.transition.Unlock()

	m.endLocked()
	if account == "" {
		m.logger.Printf("wallet disconnected")
		return nil
	}

	if err := m.ensureNetwork(ctx); err != nil {
		return err
	}
	m.startLocked(account)
	return nil
}

// Watch feeds account changes from the wallet into HandleAccountsChanged until ctx ends
func (m *Manager) Watch(ctx context.Context) error {
	if m.wallet == nil {
		return application.ErrWalletUnavailable
	}

	changes, err := m.wallet.SubscribeAccounts(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case account, ok := <-changes:
			if !ok {
				return nil
			}
			if err := m.HandleAccountsChanged(ctx, account); err != nil && !errors.Is(err, application.ErrUserRejected) {
				m.logger.Printf("account change to %s: %v", account, err)
			}
		}
	}
}

// Disconnect ends the current session, if any
func (m *Manager) Disconnect() {
	m.transition.Lock()
	defer m.transition.Unlock()
	m.endLocked()
}

func (m *Manager) startLocked(account string) {
	s := domain.Session{
		Account:   account,
		ChainID:   m.network.ChainID,
		Network:   m.network.Name,
		StartedAt: m.now(),
	}

	m.mu.Lock()
	m.session = &s
	m.mu.Unlock()

	for _, l := range m.listeners {
		l.OnSessionStart(s)
	}
}

func (m *Manager) endLocked() {
	m.mu.Lock()
	had := m.session != nil
	m.session = nil
	m.mu.Unlock()

	if !had {
		return
	}
	for _, l := range m.listeners {
		l.OnSessionEnd()
	}
}
