// Package controller keeps the local view of on-chain tasks and their off-chain
// content consistent and serializes wallet-driven mutations.
package controller

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tododapp/internal/application"
	"tododapp/internal/domain"
	"tododapp/internal/ports"
)

const (
	DefaultPollInterval     = time.Second
	DefaultFetchConcurrency = 8
)

// Options configures a Controller
type Options struct {
	PollInterval     time.Duration
	FetchConcurrency int
	Logger           *log.Logger
}

// TaskView pairs a task with the text to display for it
type TaskView struct {
	domain.Task
	Text         string
	ContentState domain.ContentState
}

// Snapshot is a copy of the controller state, safe to read without locking
type Snapshot struct {
	Session     domain.Session
	Active      bool
	State       domain.LifecycleState
	Pending     *domain.Pending
	Tasks       []TaskView
	LastError   error
	LastOutcome domain.LifecycleState
	RefreshedAt time.Time
}

// Busy reports whether a mutation occupies the in-flight slot
func (s Snapshot) Busy() bool {
	return s.Pending != nil
}

// Result is the outcome of one mutating lifecycle
type Result struct {
	Operation      domain.Pending
	Outcome        domain.LifecycleState // StateApplied, StateFailed or StateRejected
	TxHandle       domain.TxHandle
	ContentAddress string // Create only
}

// Controller is the task synchronization and transaction-lifecycle controller.
// It implements session.Listener.
type Controller struct {
	ledger ports.TaskLedger
	store  ports.ContentStore
	opts   Options
	logger *log.Logger
	newID  func() string
	now    func() time.Time

	mu             sync.Mutex
	session        domain.Session
	active         bool
	epoch          uint64 // Incremented on every session start and end
	nextGeneration uint64
	generation     uint64 // Generation of the last applied listing
	tasks          []domain.Task
	content        map[string]domain.ContentRecord
	state          domain.LifecycleState
	pending        *domain.Pending
	lastErr        error
	lastOutcome    domain.LifecycleState
	refreshedAt    time.Time
	poller         *poller
	lifetime       context.Context // Outlives callers; canceled on session end
	endLifetime    context.CancelFunc
}

// New creates a controller with no active session
func New(ledger ports.TaskLedger, store ports.ContentStore, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = DefaultFetchConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		ledger:  ledger,
		store:   store,
		opts:    opts,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
		content: make(map[string]domain.ContentRecord),
	}
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Session:     c.session,
		Active:      c.active,
		State:       c.state,
		LastError:   c.lastErr,
		LastOutcome: c.lastOutcome,
		RefreshedAt: c.refreshedAt,
		Tasks:       make([]TaskView, len(c.tasks)),
	}
	if c.pending != nil {
		p := *c.pending
		snap.Pending = &p
	}
	for i, t := range c.tasks {
		rec, ok := c.content[t.ContentAddress]
		if !ok {
			rec = domain.LoadingRecord()
		}
		snap.Tasks[i] = TaskView{Task: t, Text: rec.Display(), ContentState: rec.State}
	}
	return snap
}

// Refresh re-reads the ledger and resolves content for any address not seen before.
// It returns once its own fetches have finished.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return application.ErrNoSession
	}
	epoch := c.epoch
	c.nextGeneration++
	gen := c.nextGeneration
	c.mu.Unlock()

	tasks, err := c.ledger.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.epoch != epoch || gen < c.generation {
		c.mu.Unlock()
		return nil
	}
	c.generation = gen
	c.tasks = tasks
	c.refreshedAt = c.now()

	var missing []string
	for _, t := range tasks {
		if _, ok := c.content[t.ContentAddress]; ok {
			continue
		}
		c.content[t.ContentAddress] = domain.LoadingRecord()
		missing = append(missing, t.ContentAddress)
	}
	c.mu.Unlock()

	return c.resolve(ctx, epoch, missing)
}

func (c *Controller) resolve(ctx context.Context, epoch uint64, addresses []string) error {
	var g errgroup.Group
	g.SetLimit(c.opts.FetchConcurrency)

	for _, address := range addresses {
		g.Go(func() error {
			text, err := c.store.Fetch(ctx, address)

			c.mu.Lock()
			defer c.mu.Unlock()

			if c.epoch != epoch {
				return nil
			}
			// Another writer (write-through) may have settled it meanwhile
			if rec, ok := c.content[address]; !ok || rec.State != domain.ContentLoading {
				return nil
			}

			switch {
			case err == nil:
				c.content[address] = domain.ResolvedRecord(text)
			case ctx.Err() != nil:
				// Abandoned rather than failed, so a later refresh tries again
				delete(c.content, address)
			default:
				c.logger.Printf("content %s unavailable: %v", address, err)
				c.content[address] = domain.FailedRecord(err)
			}
			return nil
		})
	}

	_ = g.Wait()
	return ctx.Err()
}

// CreateTask publishes text to the content store and records its address on the ledger
func (c *Controller) CreateTask(ctx context.Context, text string) (*Result, error) {
	if err := application.ValidateContent(text); err != nil {
		return nil, err
	}

	lc, err := c.begin(domain.OpCreate, 0)
	if err != nil {
		return nil, err
	}

	address, err := c.store.Publish(ctx, text)
	if err != nil {
		return c.fail(ctx, lc, "", err)
	}
	c.logger.Printf("op %s: published content %s", lc.op.ID, address)

	handle, err := c.ledger.Create(ctx, address)
	if err != nil {
		return c.fail(ctx, lc, "", err)
	}

	res, err := c.confirm(ctx, lc, handle, func() {
		c.content[address] = domain.ResolvedRecord(text)
	})
	if res != nil {
		res.ContentAddress = address
	}
	return res, err
}

// CompleteTask marks the task at index completed
func (c *Controller) CompleteTask(ctx context.Context, index uint64) (*Result, error) {
	return c.mutate(ctx, domain.OpComplete, index, c.ledger.Complete)
}

// DeleteTask removes the task at index
func (c *Controller) DeleteTask(ctx context.Context, index uint64) (*Result, error) {
	return c.mutate(ctx, domain.OpDelete, index, c.ledger.Delete)
}

func (c *Controller) mutate(ctx context.Context, kind domain.OperationKind, index uint64,
	submit func(context.Context, uint64) (domain.TxHandle, error)) (*Result, error) {
	lc, err := c.begin(kind, index)
	if err != nil {
		return nil, err
	}

	handle, err := submit(ctx, index)
	if err != nil {
		return c.fail(ctx, lc, "", err)
	}
	return c.confirm(ctx, lc, handle, nil)
}

// lifecycle is one claim on the in-flight slot
type lifecycle struct {
	op    domain.Pending
	epoch uint64
	ctx   context.Context // Canceled when the session that started it ends
}

// begin claims the in-flight slot
func (c *Controller) begin(kind domain.OperationKind, index uint64) (lifecycle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return lifecycle{}, application.ErrNoSession
	}
	if c.pending != nil {
		return lifecycle{}, application.ErrBusy
	}

	op := domain.Pending{
		ID:        c.newID(),
		Kind:      kind,
		Index:     index,
		StartedAt: c.now(),
	}
	c.pending = &op
	c.state = domain.StateSubmitting
	c.lastErr = nil

	c.logger.Printf("op %s: %s submitting", op.ID, op.Describe())
	return lifecycle{op: op, epoch: c.epoch, ctx: c.lifetime}, nil
}

// confirm waits for the receipt on the session context, so the slot stays held
// until the transaction settles or the session ends. A caller that stops waiting
// gets its context error while the lifecycle runs on.
// onConfirmed runs under the lock, only if the session is still current.
func (c *Controller) confirm(ctx context.Context, lc lifecycle, handle domain.TxHandle, onConfirmed func()) (*Result, error) {
	c.awaitConfirmation(lc.epoch, handle)

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		if err := c.ledger.Confirm(lc.ctx, handle); err != nil {
			res, err := c.fail(lc.ctx, lc, handle, err)
			done <- outcome{res, err}
			return
		}
		if onConfirmed != nil {
			c.mu.Lock()
			if c.epoch == lc.epoch {
				onConfirmed()
			}
			c.mu.Unlock()
		}
		done <- outcome{res: c.apply(lc, handle)}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		c.logger.Printf("op %s: caller stopped waiting, %s still pending", lc.op.ID, handle.Short())
		return nil, ctx.Err()
	}
}

func (c *Controller) awaitConfirmation(epoch uint64, handle domain.TxHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch || c.pending == nil {
		return
	}
	c.pending.TxHandle = handle
	c.state = domain.StateAwaitingConfirmation
	c.logger.Printf("op %s: awaiting confirmation of %s", c.pending.ID, handle.Short())
}

func (c *Controller) current(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch == epoch
}

// apply refreshes after a confirmed mutation and releases the slot.
// Nothing is refreshed or released for a session that has already ended.
func (c *Controller) apply(lc lifecycle, handle domain.TxHandle) *Result {
	op := lc.op
	op.TxHandle = handle
	res := &Result{Operation: op, Outcome: domain.StateApplied, TxHandle: handle}

	if !c.current(lc.epoch) {
		c.logger.Printf("op %s: %s confirmed after its session ended", op.ID, op.Describe())
		return res
	}

	if err := c.Refresh(lc.ctx); err != nil && !errors.Is(err, application.ErrNoSession) && lc.ctx.Err() == nil {
		c.logger.Printf("op %s: refresh after confirmation failed: %v", op.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != lc.epoch {
		return res
	}
	c.pending = nil
	c.state = domain.StateApplied
	c.lastOutcome = domain.StateApplied
	c.logger.Printf("op %s: %s applied", op.ID, op.Describe())
	return res
}

// fail ends a lifecycle. A user rejection is not an error, and neither is a
// caller giving up before anything was submitted.
func (c *Controller) fail(ctx context.Context, lc lifecycle, handle domain.TxHandle, err error) (*Result, error) {
	op := lc.op
	op.TxHandle = handle
	rejected := errors.Is(err, application.ErrUserRejected)
	abandoned := handle == "" && ctx.Err() != nil

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != lc.epoch {
		c.logger.Printf("op %s: %s dropped with its session", op.ID, op.Describe())
		if rejected {
			return &Result{Operation: op, Outcome: domain.StateRejected, TxHandle: handle}, nil
		}
		return &Result{Operation: op, Outcome: domain.StateFailed, TxHandle: handle}, err
	}

	c.pending = nil
	switch {
	case rejected:
		c.state = domain.StateIdle
		c.lastOutcome = domain.StateRejected
		c.logger.Printf("op %s: %s rejected by user", op.ID, op.Describe())
		return &Result{Operation: op, Outcome: domain.StateRejected, TxHandle: handle}, nil
	case abandoned:
		c.state = domain.StateIdle
		c.lastOutcome = domain.StateFailed
		c.logger.Printf("op %s: %s abandoned before submission: %v", op.ID, op.Describe(), err)
	default:
		c.state = domain.StateFailed
		c.lastOutcome = domain.StateFailed
		c.lastErr = err
		c.logger.Printf("op %s: %s failed: %v", op.ID, op.Describe(), err)
	}
	return &Result{Operation: op, Outcome: domain.StateFailed, TxHandle: handle}, err
}

// DismissError clears the error banner
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = nil
	if c.state == domain.StateFailed {
		c.state = domain.StateIdle
	}
}

// OnSessionStart resets all caches for a new session and starts polling
func (c *Controller) OnSessionStart(s domain.Session) {
	c.teardown()

	c.mu.Lock()
	c.epoch++
	c.session = s
	c.active = true
	c.lifetime, c.endLifetime = context.WithCancel(context.Background())
	p := newPoller(c.opts.PollInterval, c.poll)
	c.poller = p
	p.start()
	c.mu.Unlock()

	c.logger.Printf("session started for %s on %s", s.ShortAccount(), s.Network)
}

// OnSessionEnd stops polling and clears tasks, content, the in-flight slot and the error.
// No refresh begins after it returns.
func (c *Controller) OnSessionEnd() {
	if c.teardown() {
		c.logger.Printf("session ended")
	}
}

func (c *Controller) teardown() bool {
	c.mu.Lock()
	wasActive := c.active
	p := c.poller
	c.poller = nil
	endLifetime := c.endLifetime
	c.endLifetime = nil
	c.epoch++
	c.active = false
	c.mu.Unlock()

	if endLifetime != nil {
		endLifetime()
	}
	if p != nil {
		p.stop()
	}

	c.mu.Lock()
	c.session = domain.Session{}
	c.tasks = nil
	c.content = make(map[string]domain.ContentRecord)
	c.pending = nil
	c.state = domain.StateIdle
	c.lastErr = nil
	c.lastOutcome = domain.StateIdle
	c.refreshedAt = time.Time{}
	c.mu.Unlock()

	return wasActive
}

func (c *Controller) poll(ctx context.Context) {
	err := c.Refresh(ctx)
	if err == nil || errors.Is(err, application.ErrNoSession) || ctx.Err() != nil {
		return
	}
	c.logger.Printf("poll: %v", err)
}
