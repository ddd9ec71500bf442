// Package background runs work that must outlive the request that started it.
package background

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Group tracks detached tasks so shutdown can wait for them to drain.
type Group struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewGroup returns a Group whose tasks are each bounded by timeout.
// A zero timeout leaves tasks unbounded.
func NewGroup(timeout time.Duration) *Group {
	return &Group{timeout: timeout}
}

// Future is the outcome of one task.
type Future struct {
	done chan struct{}
	err  error
}

// Done is closed once the task and its error callback have returned.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the task finishes and returns its error.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}

// Go starts fn on its own goroutine. The task context keeps the values of
// parent but not its cancellation, so a finished request does not abort it.
// onError, if set, receives a failure or a recovered panic.
func (g *Group) Go(parent context.Context, name string, fn func(ctx context.Context) error, onError func(error)) *Future {
	f := &Future{done: make(chan struct{})}
	ctx := context.WithoutCancel(parent)
	cancel := context.CancelFunc(func() {})
	if g.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer close(f.done)
		defer cancel()

		f.err = run(ctx, name, fn)
		if f.err != nil && onError != nil {
			onError(f.err)
		}
	}()
	return f
}

func run(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("background task %s panicked: %v", name, r)
		}
	}()
	return fn(ctx)
}

// Wait blocks until every started task has finished or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		log.Printf("[Background] Gave up waiting for tasks: %v", ctx.Err())
		return ctx.Err()
	}
}
