package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"tododapp/internal/application"
	"tododapp/internal/domain"
)

const (
	alice = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	bob   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

type fakeWallet struct {
	mu         sync.Mutex
	accounts   []string
	requestErr error
	chainID    uint64
	switchErr  error
	switches   []uint64
	changes    chan string
}

func (w *fakeWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	return w.accounts, w.requestErr
}

func (w *fakeWallet) ChainID(ctx context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID, nil
}

func (w *fakeWallet) SwitchChain(ctx context.Context, chainID uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.switches = append(w.switches, chainID)
	if w.switchErr != nil {
		return w.switchErr
	}
	w.chainID = chainID
	return nil
}

func (w *fakeWallet) SubscribeAccounts(ctx context.Context) (<-chan string, error) {
	return w.changes, nil
}

// recorder logs listener calls as "start <account>" and "end"
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) OnSessionStart(s domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start "+s.Account)
}

func (r *recorder) OnSessionEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "end")
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

var localhost = domain.Network{Name: "localhost", ChainID: domain.HardhatChainID}

func newTestManager(w *fakeWallet) (*Manager, *recorder) {
	rec := &recorder{}
	m := NewManager(nil, localhost, log.New(io.Discard, "", 0), rec)
	if w != nil {
		m.wallet = w
	}
	return m, rec
}

func equalEvents(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name         string
		wallet       *fakeWallet
		wantErr      error
		wantEvents   []string
		wantSwitches int
		wantBanner   bool
	}{
		{
			name:       "already on the right chain",
			wallet:     &fakeWallet{accounts: []string{alice}, chainID: domain.HardhatChainID},
			wantEvents: []string{"start " + alice},
		},
		{
			name:         "switches chain",
			wallet:       &fakeWallet{accounts: []string{alice}, chainID: 1},
			wantEvents:   []string{"start " + alice},
			wantSwitches: 1,
		},
		{
			name:    "no wallet",
			wallet:  nil,
			wantErr: application.ErrWalletUnavailable,
		},
		{
			name:    "no accounts",
			wallet:  &fakeWallet{chainID: domain.HardhatChainID},
			wantErr: application.ErrWalletUnavailable,
		},
		{
			name:    "user declines access",
			wallet:  &fakeWallet{requestErr: application.ErrUserRejected},
			wantErr: application.ErrUserRejected,
		},
		{
			name:         "switch unsupported",
			wallet:       &fakeWallet{accounts: []string{alice}, chainID: 1, switchErr: application.ErrSwitchUnsupported},
			wantErr:      application.ErrSwitchUnsupported,
			wantSwitches: 1,
			wantBanner:   true,
		},
		{
			name:         "switch declined",
			wallet:       &fakeWallet{accounts: []string{alice}, chainID: 1, switchErr: application.ErrUserRejected},
			wantErr:      application.ErrUserRejected,
			wantSwitches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newTestManager(tt.wallet)

			account, err := m.Connect(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if m.Status().Connected {
					t.Errorf("expected no session after a failed connect")
				}
			} else {
				if err != nil {
					t.Fatalf("Connect failed: %v", err)
				}
				if account != alice {
					t.Errorf("expected %s, got %s", alice, account)
				}
				st := m.Status()
				if !st.Connected || st.Session.ChainID != domain.HardhatChainID || st.Session.Network != "localhost" {
					t.Errorf("unexpected status %+v", st)
				}
			}

			if got := rec.snapshot(); !equalEvents(got, tt.wantEvents) {
				t.Errorf("expected events %v, got %v", tt.wantEvents, got)
			}
			if tt.wallet != nil && len(tt.wallet.switches) != tt.wantSwitches {
				t.Errorf("expected %d switch requests, got %d", tt.wantSwitches, len(tt.wallet.switches))
			}
			if (m.NetworkError() != nil) != tt.wantBanner {
				t.Errorf("expected banner %v, got %v", tt.wantBanner, m.NetworkError())
			}
		})
	}
}

func TestDismissNetworkError(t *testing.T) {
	w := &fakeWallet{accounts: []string{alice}, chainID: 1, switchErr: application.ErrSwitchUnsupported}
	m, _ := newTestManager(w)

	m.Connect(context.Background())
	if m.NetworkError() == nil {
		t.Fatal("expected network error recorded")
	}

	m.DismissNetworkError()
	if m.NetworkError() != nil {
		t.Errorf("expected banner dismissed")
	}
}

func TestHandleAccountsChanged(t *testing.T) {
	w := &fakeWallet{accounts: []string{alice}, chainID: domain.HardhatChainID}
	m, rec := newTestManager(w)

	if _, err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := m.HandleAccountsChanged(context.Background(), bob); err != nil {
		t.Fatalf("switch to bob failed: %v", err)
	}
	if err := m.HandleAccountsChanged(context.Background(), ""); err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}

	want := []string{"start " + alice, "end", "start " + bob, "end"}
	if got := rec.snapshot(); !equalEvents(got, want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
	if m.Status().Connected {
		t.Errorf("expected disconnected")
	}
}

func TestHandleAccountsChanged_WrongNetworkLeavesNoSession(t *testing.T) {
	w := &fakeWallet{accounts: []string{alice}, chainID: domain.HardhatChainID}
	m, rec := newTestManager(w)
	m.Connect(context.Background())

	w.mu.Lock()
	w.chainID = 1
	w.switchErr = application.ErrSwitchUnsupported
	w.mu.Unlock()

	if err := m.HandleAccountsChanged(context.Background(), bob); !errors.Is(err, application.ErrSwitchUnsupported) {
		t.Fatalf("expected ErrSwitchUnsupported, got %v", err)
	}

	want := []string{"start " + alice, "end"}
	if got := rec.snapshot(); !equalEvents(got, want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
	if m.Status().Connected {
		t.Errorf("expected no session on the wrong network")
	}
}

func TestWatch(t *testing.T) {
	w := &fakeWallet{accounts: []string{alice}, chainID: domain.HardhatChainID, changes: make(chan string)}
	m, rec := newTestManager(w)
	m.Connect(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	w.changes <- bob
	w.changes <- ""
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	want := []string{"start " + alice, "end", "start " + bob, "end"}
	if got := rec.snapshot(); !equalEvents(got, want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
}

func TestDisconnect(t *testing.T) {
	w := &fakeWallet{accounts: []string{alice}, chainID: domain.HardhatChainID}
	m, rec := newTestManager(w)
	m.Connect(context.Background())

	m.Disconnect()
	m.Disconnect()

	want := []string{"start " + alice, "end"}
	if got := rec.snapshot(); !equalEvents(got, want) {
		t.Errorf("expected a single end event, got %v", got)
	}
}
