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

// Batch is a fixed-capacity slice of accumulated items, delivered whole
// by a [BatchQueue]. Len reports how many slots were actually filled —
// always BatchQueue's configured size for a full batch, possibly fewer
// for a forced Flush.
type Batch[T any] struct {
	items []T
}

// Len returns the number of items in the batch.
func (b *Batch[T]) Len() int {
	return len(b.items)
}

// At returns the item at index i. Returns [ErrIndexOutOfRange] if i is
// outside [0, Len()).
func (b *Batch[T]) At(i int) (T, error) {
	if i < 0 || i >= len(b.items) {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return b.items[i], nil
}

// batchBuilding is an in-progress batch: a fixed-size slot array claimed
// via fetch-and-add, with a per-slot publish flag so a reader never
// observes a slot whose value write hasn't completed.
type batchBuilding[T any] struct {
	items     []T
	published []atomix.Bool
	reserved  atomix.Int64 // FAA claim counter, starts at -1; poisoned (set to the batch size) to force a flush
}

func newBatchBuilding[T any](size int) *batchBuilding[T] {
	b := &batchBuilding[T]{
		items:     make([]T, size),
		published: make([]atomix.Bool, size),
	}
	b.reserved.StoreRelaxed(-1)
	return b
}

// BatchQueue accumulates producer items into fixed-size batches
// (component G) and surfaces whole batches to consumers through an
// inner [Queue]. Reservation is a fetch-and-add on a counter; publishing
// a slot uses a full fence (AddAcqRel on the counter happens-before the
// slot write, and the flag store uses release ordering) so a consumer
// that observes a published flag always observes the corresponding item
// write.
type BatchQueue[T any] struct {
	size  int
	inner *Queue[*Batch[T]]

	building atomic.Pointer[batchBuilding[T]]
}

// NewBatchQueue constructs a batch queue that groups producer items into
// batches of size. size must be positive.
func NewBatchQueue[T any](size int) (*BatchQueue[T], error) {
	if size <= 0 {
		return nil, ErrInvalidArgument
	}
	q := &BatchQueue[T]{size: size, inner: NewQueue[*Batch[T]]()}
	q.building.Store(newBatchBuilding[T](size))
	return q, nil
}

// Add accepts one item, completing and publishing a batch to the inner
// queue whenever the size-th item in a batch is reserved.
func (q *BatchQueue[T]) Add(item T) {
	sw := spin.Wait{}
	for {
		b := q.building.Load()
		r := b.reserved.AddAcqRel(1)
		if r >= int64(q.size) {
			// Either another producer is completing this batch's last
			// slot and will swap in a fresh builder, or this batch was
			// force-flushed and poisoned: either way, help by retrying
			// against the (possibly new) current builder.
			sw.Once()
			continue
		}

		b.items[r] = item
		b.published[r].StoreRelease(true)

		if r == int64(q.size)-1 {
			q.rotate(b)
		}
		return
	}
}

// rotate swaps in a fresh builder and publishes the finished batch b to
// the inner queue. Only the producer that claimed the last slot calls
// this; callers observing an already-rotated builder simply retry Add.
func (q *BatchQueue[T]) rotate(b *batchBuilding[T]) {
	fresh := newBatchBuilding[T](q.size)
	if !q.building.CompareAndSwap(b, fresh) {
		return
	}
	q.publish(b)
}

func (q *BatchQueue[T]) publish(b *batchBuilding[T]) {
	sw := spin.Wait{}
	n := len(b.items)
	for i := 0; i < n; i++ {
		for !b.published[i].LoadAcquire() {
			sw.Once()
		}
	}
	out := &Batch[T]{items: append([]T(nil), b.items[:n]...)}
	q.inner.Add(out)
}

// Flush forces the current, possibly-partial batch to be published
// immediately. If the batch is empty (no items reserved since the last
// rotation), Flush is a no-op. If the batch's last slot has already been
// reserved by a concurrent Add (or the batch was already poisoned by
// another Flush), Flush is a no-op for this call — the full batch it
// raced with is published through the ordinary Add path instead.
func (q *BatchQueue[T]) Flush() {
	b := q.building.Load()
	r := b.reserved.LoadAcquire()
	if r < 0 {
		return // nothing reserved yet
	}
	if r >= int64(q.size)-1 {
		return // the last slot's producer rotates this batch, or it is already poisoned
	}
	n := r + 1
	if n > int64(q.size) {
		n = int64(q.size)
	}
	// Poison the counter so any producer racing to claim a slot in this
	// batch observes r >= size and retries against the fresh builder.
	if !b.reserved.CompareAndSwapAcqRel(r, int64(q.size)) {
		return // a producer or another Flush already moved the counter
	}
	fresh := newBatchBuilding[T](q.size)
	if !q.building.CompareAndSwap(b, fresh) {
		return
	}

	sw := spin.Wait{}
	for i := int64(0); i < n; i++ {
		for !b.published[i].LoadAcquire() {
			sw.Once()
		}
	}
	out := &Batch[T]{items: append([]T(nil), b.items[:n]...)}
	q.inner.Add(out)
}

// Take returns a Future resolving to the next complete or
// force-flushed batch.
func (q *BatchQueue[T]) Take(ctx context.Context) Future[*Batch[T]] {
	return q.inner.Take(ctx)
}

// BatchSize returns the configured batch size.
func (q *BatchQueue[T]) BatchSize() int {
	return q.size
}
