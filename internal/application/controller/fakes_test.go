package controller

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"tododapp/internal/application"
	"tododapp/internal/domain"
)

type fakeLedger struct {
	mu         sync.Mutex
	tasks      []domain.Task
	listCalls  int
	listFn     func(call int) ([]domain.Task, error) // Overrides tasks when set
	submitErr  error
	confirmErr error
	gate       chan struct{} // Confirm blocks until closed when set
	deaf       bool          // Confirm ignores cancellation while gated
	submitted  []string
	queued     map[domain.TxHandle]func()
}

func newFakeLedger(tasks ...domain.Task) *fakeLedger {
	return &fakeLedger{tasks: tasks, queued: make(map[domain.TxHandle]func())}
}

func (l *fakeLedger) List(ctx context.Context) ([]domain.Task, error) {
	l.mu.Lock()
	l.listCalls++
	call := l.listCalls
	fn := l.listFn
	l.mu.Unlock()

	if fn != nil {
		return fn(call)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Task, len(l.tasks))
	copy(out, l.tasks)
	return domain.IndexTasks(out), nil
}

func (l *fakeLedger) submit(desc string, apply func()) (domain.TxHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.submitErr != nil {
		return "", l.submitErr
	}
	l.submitted = append(l.submitted, desc)
	tx := domain.TxHandle(fmt.Sprintf("0x%064x", len(l.submitted)))
	l.queued[tx] = apply
	return tx, nil
}

func (l *fakeLedger) Create(ctx context.Context, address string) (domain.TxHandle, error) {
	return l.submit("create "+address, func() {
		l.tasks = append(l.tasks, domain.Task{ContentAddress: address, CreatedAt: 1000})
	})
}

func (l *fakeLedger) Complete(ctx context.Context, index uint64) (domain.TxHandle, error) {
	return l.submit(fmt.Sprintf("complete %d", index), func() {
		l.tasks[index].IsCompleted = true
	})
}

func (l *fakeLedger) Delete(ctx context.Context, index uint64) (domain.TxHandle, error) {
	return l.submit(fmt.Sprintf("delete %d", index), func() {
		l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	})
}

func (l *fakeLedger) Confirm(ctx context.Context, tx domain.TxHandle) error {
	l.mu.Lock()
	gate := l.gate
	deaf := l.deaf
	l.mu.Unlock()
	if gate != nil && deaf {
		<-gate
	} else if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.confirmErr != nil {
		return l.confirmErr
	}
	if apply, ok := l.queued[tx]; ok {
		apply()
		delete(l.queued, tx)
	}
	return nil
}

func (l *fakeLedger) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listCalls
}

type fakeStore struct {
	mu         sync.Mutex
	content    map[string]string
	failing    map[string]bool
	fetchCalls map[string]int
	published  int
	publishErr error
}

func newFakeStore(content map[string]string) *fakeStore {
	if content == nil {
		content = make(map[string]string)
	}
	return &fakeStore{content: content, failing: make(map[string]bool), fetchCalls: make(map[string]int)}
}

func (s *fakeStore) Publish(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publishErr != nil {
		return "", s.publishErr
	}
	s.published++
	address := fmt.Sprintf("bafkreinew%d", s.published)
	s.content[address] = text
	return address, nil
}

func (s *fakeStore) Fetch(ctx context.Context, address string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls[address]++
	if s.failing[address] {
		return "", &application.FetchError{Address: address, Err: fmt.Errorf("gateway returned 504")}
	}
	text, ok := s.content[address]
	if !ok {
		return "", &application.FetchError{Address: address, Err: fmt.Errorf("not found")}
	}
	return text, nil
}

func (s *fakeStore) fetches(address string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls[address]
}

var testSession = domain.Session{
	Account: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	ChainID: domain.HardhatChainID,
	Network: "localhost",
}

// newTestController starts a session and waits for the initial poll to settle.
// The poll interval is long enough that no further poll runs during a test.
func newTestController(t *testing.T, ledger *fakeLedger, store *fakeStore) *Controller {
	t.Helper()
	return newPollingController(t, ledger, store, time.Hour)
}

func newPollingController(t *testing.T, ledger *fakeLedger, store *fakeStore, interval time.Duration) *Controller {
	t.Helper()

	c := New(ledger, store, Options{
		PollInterval: interval,
		Logger:       log.New(io.Discard, "", 0),
	})
	c.OnSessionStart(testSession)
	t.Cleanup(c.OnSessionEnd)

	waitFor(t, "initial poll", func() bool {
		snap := c.Snapshot()
		if snap.RefreshedAt.IsZero() {
			return false
		}
		for _, tv := range snap.Tasks {
			if tv.ContentState == domain.ContentLoading {
				return false
			}
		}
		return true
	})
	return c
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
