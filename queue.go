// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"context"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Queue is the segmented async queue (component C): a multi-producer/
// multi-consumer FIFO whose slots serve double duty as item storage and
// pending-consumer registration, organized as a chain of fixed-size
// segments with a segment pool.
//
// Add never blocks. Take returns a [Future] that resolves immediately if
// an item is already resident, or later, when a producer pairs with the
// registered awaiter.
//
// The zero value is not usable — construct with [NewQueue].
type Queue[T any] struct {
	_ pad

	itemTail    atomic.Pointer[segment[T]]
	awaiterTail atomic.Pointer[segment[T]]
	head        atomic.Pointer[segment[T]]

	_ pad

	nextSegmentID atomix.Uint64
	enumBalance   atomix.Int64 // >0: enumerations outstanding; <0: segment transferring to pool

	pool    segmentPool[T]
	segSize int
}

// NewQueue constructs a segmented async queue, optionally seeded from an
// initial iterable via [WithInitialItems].
func NewQueue[T any](opts ...Option[T]) *Queue[T] {
	var o queueOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	size := o.segmentSize
	if size <= 0 {
		size = defaultSegmentSize
	}

	q := &Queue[T]{segSize: size}
	first := newSegment[T](0, size)
	q.nextSegmentID.StoreRelaxed(0)
	q.itemTail.Store(first)
	q.awaiterTail.Store(first)
	q.head.Store(first)

	for _, item := range o.initialItems {
		q.Add(item)
	}
	return q
}

// Add accepts one item. It never blocks a schedulable thread beyond
// bounded spinning and never fails.
func (q *Queue[T]) Add(item T) {
	sw := spin.Wait{}
	for {
		seg := q.itemTail.Load()
		i := seg.itemIndex.AddAcqRel(1)
		if i >= int64(q.segSize) {
			q.helpGrow(seg, &q.itemTail)
			sw = spin.Wait{}
			continue
		}

		seg.items[i] = item
		if seg.states[i].CompareAndSwapAcqRel(slotNone, slotHasItem) {
			// Producer arrived first: the item is enqueued for a future
			// consumer claiming the same index.
			q.maintain(seg, i, &q.itemTail)
			return
		}

		// A consumer had already marked HasAwaiter. Its handle is
		// written with release ordering AFTER that CAS, so spin-read
		// until it becomes visible.
		var aw *awaiter[T]
		for {
			if aw = seg.awaiters[i].Load(); aw != nil {
				break
			}
			sw.Once()
		}
		ok := aw.tryComplete(item)
		var zero T
		seg.items[i] = zero
		seg.awaiters[i].Store(nil)
		seg.states[i].StoreRelease(slotCleared)
		q.maintain(seg, i, &q.itemTail)
		if !ok {
			// The consumer canceled before we completed it: this add did
			// NOT succeed, retry at a fresh slot.
			sw = spin.Wait{}
			continue
		}
		return
	}
}

// Take returns a [Future] resolving to the next item, respecting
// per-segment ordering. Canceling ctx resolves the Future as canceled
// without reclaiming the slot.
func (q *Queue[T]) Take(ctx context.Context) Future[T] {
	sw := spin.Wait{}
	for {
		seg := q.awaiterTail.Load()
		i := seg.awaiterIndex.AddAcqRel(1)
		if i >= int64(q.segSize) {
			q.helpGrow(seg, &q.awaiterTail)
			sw = spin.Wait{}
			continue
		}

		if seg.states[i].CompareAndSwapAcqRel(slotNone, slotHasAwaiter) {
			// Consumer arrived first: construct an awaiter bound to the
			// caller's cancellation, then publish it with release
			// ordering.
			aw := newCancelableAwaiter[T](ctx)
			seg.awaiters[i].Store(aw)
			q.maintain(seg, i, &q.awaiterTail)
			return aw.future()
		}

		// A producer had already marked HasItem.
		item := seg.items[i]
		var zero T
		seg.items[i] = zero
		seg.states[i].StoreRelease(slotCleared)
		q.maintain(seg, i, &q.awaiterTail)
		return resolvedFuture(item)
	}
}

// TryTake synchronously takes an item without registering a real
// pending awaiter, for use as this Queue's [Container] TryTake.
// It claims a consumer slot exactly as Take does; if no item is resident
// it publishes an already-canceled awaiter as the slot's handle (so a
// producer that later lands on this slot discovers the cancellation via
// tryComplete returning false and retries per the normal rendezvous
// contract) and reports ErrWouldBlock instead of waiting.
func (q *Queue[T]) TryTake() (T, error) {
	sw := spin.Wait{}
	for {
		seg := q.awaiterTail.Load()
		i := seg.awaiterIndex.AddAcqRel(1)
		if i >= int64(q.segSize) {
			q.helpGrow(seg, &q.awaiterTail)
			sw = spin.Wait{}
			continue
		}

		if seg.states[i].CompareAndSwapAcqRel(slotNone, slotHasAwaiter) {
			aw := newAwaiter[T]()
			aw.tryCancel()
			seg.awaiters[i].Store(aw)
			q.maintain(seg, i, &q.awaiterTail)
			var zero T
			return zero, ErrWouldBlock
		}

		item := seg.items[i]
		var zero T
		seg.items[i] = zero
		seg.states[i].StoreRelease(slotCleared)
		q.maintain(seg, i, &q.awaiterTail)
		return item, nil
	}
}

// TryAdd implements [Container] by delegating to Add, which never fails.
func (q *Queue[T]) TryAdd(item T) error {
	q.Add(item)
	return nil
}

// Count returns an approximate snapshot of the number of items currently
// resident (paired with no awaiter).
func (q *Queue[T]) Count() int {
	it := q.itemTail.Load()
	at := q.awaiterTail.Load()
	n := int64(q.segSize)
	ic := clampIdx(it.itemIndex.LoadAcquire()+1, 0, n)
	ac := clampIdx(at.awaiterIndex.LoadAcquire()+1, 0, n)
	switch {
	case it.id < at.id:
		return 0
	case it.id == at.id:
		if d := ic - ac; d > 0 {
			return int(d)
		}
		return 0
	default:
		gap := it.id - at.id - 1
		return int(ic) + int(n-ac) + int(gap)*q.segSize
	}
}

// AwaiterCount returns an approximate snapshot of the number of consumer
// slots claimed ahead of the producers. This includes awaiters that were
// canceled, and slots claimed by a TryTake that found no item, until a
// producer reaches those slots.
func (q *Queue[T]) AwaiterCount() int {
	it := q.itemTail.Load()
	at := q.awaiterTail.Load()
	n := int64(q.segSize)
	ic := clampIdx(it.itemIndex.LoadAcquire()+1, 0, n)
	ac := clampIdx(at.awaiterIndex.LoadAcquire()+1, 0, n)
	switch {
	case at.id < it.id:
		return 0
	case at.id == it.id:
		if d := ac - ic; d > 0 {
			return int(d)
		}
		return 0
	default:
		gap := at.id - it.id - 1
		return int(ac) + int(n-ic) + int(gap)*q.segSize
	}
}

// Iterate yields the items currently resident. It must not observe items
// already paired with an awaiter, and may skip items that disappear
// during iteration (paired with an awaiter concurrently). Iteration stops
// early if yield returns false.
func (q *Queue[T]) Iterate(yield func(T) bool) {
	sw := spin.Wait{}
	for {
		if q.enumBalance.AddAcqRel(1) > 0 {
			break
		}
		q.enumBalance.AddAcqRel(-1)
		sw.Once()
	}
	defer q.enumBalance.AddAcqRel(-1)

	n := int64(q.segSize)
	for seg := q.head.Load(); seg != nil; seg = seg.next.Load() {
		lo := seg.awaiterIndex.LoadAcquire() + 1
		if lo < 0 {
			lo = 0
		}
		hi := seg.itemIndex.LoadAcquire()
		if hi >= n {
			hi = n - 1
		}
		for i := lo; i <= hi; i++ {
			slotWait := spin.Wait{}
			for seg.states[i].LoadAcquire() == slotNone {
				slotWait.Once()
			}
			if seg.states[i].LoadAcquire() == slotHasItem {
				if !yield(seg.items[i]) {
					return
				}
			}
		}
	}
}

// maintain performs segment-tail maintenance after a claim at index i: if
// i was the last slot in seg (i == segSize-1), the claimant helps grow
// (or discovers already-grown) the next segment and advances its own
// tail pointer to it.
func (q *Queue[T]) maintain(seg *segment[T], i int64, tail *atomic.Pointer[segment[T]]) {
	if i != int64(q.segSize)-1 {
		return
	}
	q.helpGrow(seg, tail)
}

// helpGrow ensures seg.next exists (racing other claimants via CAS on
// seg.next), then advances *tail from seg to it. The party whose CAS
// publishes next is the "winning" party; any other party to arrive here
// for the same seg is the "losing" party and additionally performs head
// advancement and the pool-release attempt.
func (q *Queue[T]) helpGrow(seg *segment[T], tail *atomic.Pointer[segment[T]]) {
	next := seg.next.Load()
	if next == nil {
		candidate := q.pool.pop()
		id := q.nextSegmentID.AddAcqRel(1)
		if candidate == nil {
			candidate = newSegment[T](id, q.segSize)
		} else {
			candidate.resetForReuse(id)
		}
		if seg.next.CompareAndSwap(nil, candidate) {
			tail.CompareAndSwap(seg, candidate)
			return
		}
		// Lost the race to publish next: recycle the unused candidate.
		q.pool.push(candidate)
		next = seg.next.Load()
	}

	tail.CompareAndSwap(seg, next)
	q.finishSegment(seg, next)
}

// finishSegment performs the losing party's bookkeeping for a segment
// whose next has already been published: advance head past it, and
// attempt to release it to the pool once both its claim counters are
// exhausted and no enumeration is active.
func (q *Queue[T]) finishSegment(seg *segment[T], next *segment[T]) {
	q.head.CompareAndSwap(seg, next)

	if !seg.fullyClaimed(q.segSize) {
		return
	}
	if q.enumBalance.LoadAcquire() > 0 {
		return // enumeration active: unlink only, do not pool
	}
	q.enumBalance.AddAcqRel(-1)
	q.pool.push(seg)
	q.enumBalance.AddAcqRel(1)
}

func clampIdx(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
