package feed

import (
	"context"
	"sync"
)

// Loader runs background jobs and hands their results back to the frame
// loop. Starting a job supersedes the previous one: its context is
// cancelled and its result is dropped.
type Loader[T any] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	results chan result[T]
	wg      sync.WaitGroup

	// Owned by the frame loop
	seq       uint64
	jobCancel context.CancelFunc
}

type result[T any] struct {
	seq   uint64
	value T
}

// NewLoader creates a loader whose jobs are cancelled when parent is.
func NewLoader[T any](parent context.Context) *Loader[T] {
	ctx, cancel := context.WithCancel(parent)
	return &Loader[T]{
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan result[T], 4),
	}
}

// Go starts fn in a goroutine.
func (l *Loader[T]) Go(fn func(ctx context.Context) T) {
	if l.jobCancel != nil {
		l.jobCancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithCancel(l.ctx)
	l.jobCancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		v := fn(ctx)
		select {
		case l.results <- result[T]{seq: seq, value: v}:
		case <-l.ctx.Done():
		}
	}()
}

// Pending reports whether the latest job has not been delivered yet.
func (l *Loader[T]) Pending() bool {
	return l.jobCancel != nil
}

// Poll returns the latest job's result if it has finished. It never blocks.
func (l *Loader[T]) Poll() (T, bool) {
	for {
		select {
		case r := <-l.results:
			if r.seq != l.seq {
				continue
			}
			l.jobCancel()
			l.jobCancel = nil
			return r.value, true
		default:
			var zero T
			return zero, false
		}
	}
}

// Close cancels outstanding jobs and waits for them to return.
func (l *Loader[T]) Close() {
	l.cancel()
	l.wg.Wait()
}
