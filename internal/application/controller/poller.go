package controller

import (
	"context"
	"sync"
	"time"
)

// poller runs refresh immediately and then on every tick.
// A tick that arrives while the previous refresh is still running is skipped.
type poller struct {
	interval time.Duration
	refresh  func(ctx context.Context)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newPoller(interval time.Duration, refresh func(ctx context.Context)) *poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &poller{
		interval: interval,
		refresh:  refresh,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (p *poller) start() {
	go p.run()
}

// stop cancels the poller and waits for the in-progress refresh to return
func (p *poller) stop() {
	p.cancel()
	<-p.done
}

func (p *poller) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	finished := make(chan struct{}, 1)
	running := false

	launch := func() {
		running = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.refresh(p.ctx)
			finished <- struct{}{}
		}()
	}

	launch()
	for {
		select {
		case <-p.ctx.Done():
			wg.Wait()
			return
		case <-finished:
			running = false
		case <-ticker.C:
			if !running {
				launch()
			}
		}
	}
}
