// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Collection adapts any thread-safe [Container] into an async-consumable
// collection: Add stores synchronously into the container, Take either
// drains the container synchronously or registers a [Future]-backed
// awaiter, arbitrated by a signed item/awaiter balance so neither side
// needs to inspect the container's own emptiness under a lock.
//
// A positive balance means items are in surplus (some resident, no
// pending awaiters); a negative balance means awaiters are in surplus
// (some registered, no resident items). The awaiter side is itself a
// [Queue] of *awaiter[T], reusing component C instead of a second
// FIFO implementation.
type Collection[T any] struct {
	container Container[T]
	awaiters  *Queue[*awaiter[T]]
	balance   atomix.Int64
}

// NewCollection wraps container for async consumption.
func NewCollection[T any](container Container[T]) *Collection[T] {
	return &Collection[T]{
		container: container,
		awaiters:  NewQueue[*awaiter[T]](),
	}
}

// NewCollectionFromSeed wraps container, already populated with items,
// for async consumption. The balance is initialized from container's
// reported Count so that the first n Take calls (n == Count()) drain
// synchronously instead of spuriously registering awaiters against a
// container the caller has already filled.
func NewCollectionFromSeed[T any](container Container[T]) *Collection[T] {
	c := NewCollection(container)
	if n := container.Count(); n > 0 {
		c.balance.StoreRelaxed(int64(n))
	}
	return c
}

// Add stores item, pairing it with a pending awaiter if one is
// registered.
func (c *Collection[T]) Add(item T) {
	sw := spin.Wait{}
	for {
		bal := c.balance.LoadAcquire()
		if bal < 0 {
			if !c.balance.CompareAndSwapAcqRel(bal, bal+1) {
				sw.Once()
				continue
			}
			f := c.awaiters.Take(context.Background())
			aw, err := f.Wait(context.Background())
			if err != nil {
				// Should not happen: awaiters registered here are never
				// canceled, since the context above is Background.
				continue
			}
			if aw.tryComplete(item) {
				return
			}
			// The registered awaiter was externally canceled between
			// registration and pairing (see Take): retry, the balance
			// already reflects a decrement for this now-void awaiter.
			continue
		}
		if c.balance.CompareAndSwapAcqRel(bal, bal+1) {
			_ = c.container.TryAdd(item)
			return
		}
		sw.Once()
	}
}

// Take returns a [Future] resolving to the next item. If one is already
// resident it resolves immediately; otherwise an awaiter is registered
// and resolves when a future Add arrives, or when ctx is canceled.
func (c *Collection[T]) Take(ctx context.Context) Future[T] {
	sw := spin.Wait{}
	for {
		bal := c.balance.LoadAcquire()
		if bal > 0 {
			if !c.balance.CompareAndSwapAcqRel(bal, bal-1) {
				sw.Once()
				continue
			}
			return resolvedFuture(c.drainContainer())
		}
		if c.balance.CompareAndSwapAcqRel(bal, bal-1) {
			aw := newCancelableAwaiter[T](ctx)
			c.awaiters.Add(aw)
			return aw.future()
		}
		sw.Once()
	}
}

// TryTake synchronously takes an item without registering an awaiter on
// a miss, for use by [TakeFromAny]'s ordered pre-pass. Reports
// [ErrWouldBlock] instead of waiting when no item is resident.
func (c *Collection[T]) TryTake() (T, error) {
	sw := spin.Wait{}
	for {
		bal := c.balance.LoadAcquire()
		if bal <= 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		if c.balance.CompareAndSwapAcqRel(bal, bal-1) {
			return c.drainContainer(), nil
		}
		sw.Once()
	}
}

// drainContainer reads one item out of the underlying container after
// the balance has already been decremented to reserve it. A racing Add
// may have incremented the balance before finishing its TryAdd, so a
// miss here is transient and worth a bounded spin rather than a retry
// of the whole balance CAS.
func (c *Collection[T]) drainContainer() T {
	if v, err := c.container.TryTake(); err == nil {
		return v
	}
	sw := spin.Wait{}
	for {
		v, err := c.container.TryTake()
		if err == nil {
			return v
		}
		sw.Once()
	}
}

// Count returns an approximate snapshot of the number of resident items.
func (c *Collection[T]) Count() int {
	if bal := c.balance.LoadAcquire(); bal > 0 {
		return int(bal)
	}
	return 0
}

// AwaiterCount returns an approximate snapshot of the number of
// registered awaiters not yet paired with an item. A canceled awaiter
// stays counted until an Add discards it.
func (c *Collection[T]) AwaiterCount() int {
	if bal := c.balance.LoadAcquire(); bal < 0 {
		return int(-bal)
	}
	return 0
}
