package blocking

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by calls made after Close
var ErrClosed = errors.New("blocking client is closed")

type task func(ctx context.Context)

// executor runs submitted work on one dedicated goroutine. Work receives
// the executor's base context, which is cancelled by stop.
type executor struct {
	work     chan task
	quit     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newExecutor() *executor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &executor{
		// Unbuffered: a task handed over is always run by the worker
		work:   make(chan task),
		quit:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}

	e.wg.Add(1)
	go e.worker()

	return e
}

func (e *executor) worker() {
	defer e.wg.Done()

	for {
		select {
		case t := <-e.work:
			t(e.ctx)
		case <-e.quit:
			return
		}
	}
}

// submit hands t to the worker, blocking until it is accepted
func (e *executor) submit(t task) error {
	select {
	case <-e.quit:
		return ErrClosed
	default:
	}

	select {
	case e.work <- t:
		return nil
	case <-e.quit:
		return ErrClosed
	}
}

// stop cancels in-flight work and waits for the worker to exit
func (e *executor) stop() {
	e.stopOnce.Do(func() {
		e.cancel()
		close(e.quit)
	})
	e.wg.Wait()
}

// run executes fn on e and waits for its result
func run[T any](e *executor, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	err := e.submit(func(ctx context.Context) {
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	})
	if err != nil {
		var zero T
		return zero, err
	}

	res := <-done
	return res.value, res.err
}
