// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "context"

// Result is the outcome of [TakeFromAny]: the value taken, and the index
// into the collections slice it came from.
type Result[T any] struct {
	Value T
	Index int
}

// TakeFromAny arbitrates between up to 32 collections and resolves with
// the first item available from any of them, tagged by which collection
// produced it. Exactly one collection yields its item; if two or more
// would otherwise become ready near-simultaneously, all but the winner's
// item are pushed back onto their originating collection so nothing is
// lost.
//
// If more than one collection already holds an item at the time of the
// call, the lowest-indexed one wins: before any child awaiter is
// created, TakeFromAny drains each collection synchronously in array
// order and returns the first hit. Only once that locked pre-pass comes
// up empty does it register a real awaiter against every collection and
// let their completions race.
//
// Returns a Future that fails with [ErrInvalidArgument] synchronously if
// collections is empty or longer than 32.
func TakeFromAny[T any](ctx context.Context, collections ...*Collection[T]) Future[Result[T]] {
	n := len(collections)
	if n < 1 || n > maxPriorityLevels {
		return failedFuture[Result[T]](ErrInvalidArgument)
	}

	for i, c := range collections {
		if v, err := c.TryTake(); err == nil {
			return resolvedFuture(Result[T]{Value: v, Index: i})
		}
	}

	g := newAwaiterGroup[T]()
	childCtx, cancel := context.WithCancel(ctx)
	for i := range collections {
		g.createAwaiter(i)
	}
	g.unlock()

	for i, c := range collections {
		i, c := i, c
		go func() {
			v, err := c.Take(childCtx).Wait(context.Background())
			if err != nil {
				return
			}
			if g.tryResolve(i, v) {
				cancel()
				return
			}
			// Another child already won the group: this item must not
			// be lost, return it to its originating collection.
			c.Add(v)
		}()
	}

	out := newAwaiter[Result[T]]()
	go func() {
		select {
		case <-g.done:
			cancel()
			if g.err != nil {
				out.tryCancel()
				return
			}
			out.tryComplete(g.result)
		case <-ctx.Done():
			g.tryCancelAll()
			cancel()
			<-g.done
			if g.err == nil {
				// A child resolved the group before the cancellation
				// could: deliver its item instead of dropping it.
				out.tryComplete(g.result)
				return
			}
			out.tryCancel()
		}
	}()
	return out.future()
}
