// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// lifoNode is a single Treiber-stack link node, carrying one item.
type lifoNode[T any] struct {
	value T
	next  atomic.Pointer[lifoNode[T]]
}

// LIFOContainer is a lock-free stack [Container], giving [Collection]
// last-in-first-out ordering. Grounded on the same CAS-retry linked-stack
// shape as segment.go's segmentPool, generalized to carry an arbitrary
// value per node instead of a recycled segment.
type LIFOContainer[T any] struct {
	top   atomic.Pointer[lifoNode[T]]
	count atomix.Int64
}

// NewLIFOContainer constructs an empty stack container for use with
// [NewCollection] or, more conveniently, [NewStack].
func NewLIFOContainer[T any]() *LIFOContainer[T] {
	return &LIFOContainer[T]{}
}

// TryAdd pushes item onto the stack. Never fails.
func (s *LIFOContainer[T]) TryAdd(item T) error {
	n := &lifoNode[T]{value: item}
	for {
		old := s.top.Load()
		n.next.Store(old)
		if s.top.CompareAndSwap(old, n) {
			s.count.AddAcqRel(1)
			return nil
		}
	}
}

// TryTake pops the most recently pushed item. Reports [ErrWouldBlock]
// when the stack is empty.
func (s *LIFOContainer[T]) TryTake() (T, error) {
	for {
		old := s.top.Load()
		if old == nil {
			var zero T
			return zero, ErrWouldBlock
		}
		next := old.next.Load()
		if s.top.CompareAndSwap(old, next) {
			s.count.AddAcqRel(-1)
			return old.value, nil
		}
	}
}

// Count returns an approximate snapshot of the number of resident items.
func (s *LIFOContainer[T]) Count() int {
	if n := s.count.LoadAcquire(); n > 0 {
		return int(n)
	}
	return 0
}
