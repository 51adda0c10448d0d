// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"context"

	"code.hybscloud.com/atomix"
)

const (
	awaiterPending int32 = iota
	awaiterCompleted
	awaiterCanceled
)

// outcome holds the terminal result delivered through an awaiter.
type outcome[T any] struct {
	value T
	err   error
}

// awaiter is a one-shot completion handle: a consumer's pending result
// slot. At most one of tryComplete/tryCancel wins; the loser returns
// false and never errors.
//
// The zero value is not usable — construct with [newAwaiter] or
// [newCancelableAwaiter].
type awaiter[T any] struct {
	state  atomix.Int32
	result outcome[T]
	done   chan struct{}
	stop   func() bool
}

func newAwaiter[T any]() *awaiter[T] {
	return &awaiter[T]{done: make(chan struct{})}
}

// newCancelableAwaiter constructs an awaiter pre-wired to ctx: if ctx is
// canceled before the awaiter completes, the awaiter resolves as
// canceled. This is the cancel-aware awaiter factory (component B).
func newCancelableAwaiter[T any](ctx context.Context) *awaiter[T] {
	a := newAwaiter[T]()
	a.stop = context.AfterFunc(ctx, func() {
		a.tryCancel()
	})
	return a
}

// tryComplete atomically transitions the awaiter from pending to
// completed with value v. Returns true on success, false if the awaiter
// was already completed or canceled.
func (a *awaiter[T]) tryComplete(v T) bool {
	if !a.state.CompareAndSwapAcqRel(awaiterPending, awaiterCompleted) {
		return false
	}
	a.result = outcome[T]{value: v}
	close(a.done)
	if a.stop != nil {
		a.stop()
	}
	return true
}

// tryCancel is the symmetric counterpart of tryComplete: it resolves the
// awaiter as canceled. Canceling an awaiter that has already completed is
// a no-op that returns false.
func (a *awaiter[T]) tryCancel() bool {
	if !a.state.CompareAndSwapAcqRel(awaiterPending, awaiterCanceled) {
		return false
	}
	a.result = outcome[T]{err: ErrCanceled}
	close(a.done)
	return true
}

func (a *awaiter[T]) future() Future[T] {
	return Future[T]{aw: a}
}

// Future is the publicly observable result handle returned from Take.
//
// The completing thread never inlines the consumer's continuation:
// resolving a Future closes a channel, which wakes a goroutine parked in
// [Future.Wait] via the runtime scheduler rather than by calling into it
// directly from the producer's stack.
type Future[T any] struct {
	aw     *awaiter[T]
	ready  bool
	result outcome[T]
}

func resolvedFuture[T any](v T) Future[T] {
	return Future[T]{ready: true, result: outcome[T]{value: v}}
}

func failedFuture[T any](err error) Future[T] {
	return Future[T]{ready: true, result: outcome[T]{err: err}}
}

// Done returns a channel that is closed once the Future resolves, for use
// in a select statement alongside other events.
func (f Future[T]) Done() <-chan struct{} {
	if f.ready {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return f.aw.done
}

// mapFuture adapts a Future[T] into a Future[U] by applying fn to its
// resolved value. When f is not yet resolved, a goroutine parks on it and
// forwards the transformed outcome, preserving the guarantee that a
// continuation never runs inline on the thread that resolved f.
func mapFuture[T, U any](f Future[T], fn func(T) U) Future[U] {
	if f.ready {
		if f.result.err != nil {
			return failedFuture[U](f.result.err)
		}
		return resolvedFuture(fn(f.result.value))
	}
	out := newAwaiter[U]()
	go func() {
		v, err := f.Wait(context.Background())
		if err != nil {
			out.result = outcome[U]{err: err}
		} else {
			out.result = outcome[U]{value: fn(v)}
		}
		close(out.done)
	}()
	return out.future()
}

// Wait blocks until the Future resolves or ctx is done, whichever comes
// first. A Future that resolved before Wait was called returns
// immediately regardless of ctx.
func (f Future[T]) Wait(ctx context.Context) (T, error) {
	if f.ready {
		return f.result.value, f.result.err
	}
	select {
	case <-f.aw.done:
		return f.aw.result.value, f.aw.result.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
