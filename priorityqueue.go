// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "context"

// PriorityQueue is an async-consumable collection ordered by a caller-
// supplied priority (0 = highest), wrapping a [Collection] of
// [Prioritized] values.
type PriorityQueue[T any] struct {
	inner  *Collection[Prioritized[T]]
	levels int
}

// NewPriorityQueue constructs a priority queue with levels distinct
// priority lanes. levels must be in [1, 32].
func NewPriorityQueue[T any](levels int) (*PriorityQueue[T], error) {
	pc, err := NewPriorityContainer[T](levels)
	if err != nil {
		return nil, err
	}
	return &PriorityQueue[T]{inner: NewCollection[Prioritized[T]](pc), levels: levels}, nil
}

// NewBoundedPriorityQueue is an alias for [NewPriorityQueue] naming the
// invariant that levels is bounded to [1, 32] (component D's priority
// container uses a single 32-bit occupancy bitset internally).
func NewBoundedPriorityQueue[T any](levels int) (*PriorityQueue[T], error) {
	return NewPriorityQueue[T](levels)
}

// Add stores item at the given priority. Returns [ErrInvalidArgument] if
// priority is outside the configured range.
func (q *PriorityQueue[T]) Add(item T, priority int) error {
	if priority < 0 || priority >= q.levels {
		return ErrInvalidArgument
	}
	q.inner.Add(Prioritized[T]{Value: item, Priority: priority})
	return nil
}

// Take returns a [Future] resolving to the next item in priority order.
func (q *PriorityQueue[T]) Take(ctx context.Context) Future[T] {
	pf := q.inner.Take(ctx)
	return mapFuture(pf, func(p Prioritized[T]) T { return p.Value })
}

// Count returns an approximate snapshot of the number of resident items
// across all priority lanes.
func (q *PriorityQueue[T]) Count() int {
	return q.inner.Count()
}
