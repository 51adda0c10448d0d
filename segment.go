// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// defaultSegmentSize is the fixed per-segment slot count N used when a
// [Queue] is constructed without [WithSegmentSize].
const defaultSegmentSize = 32

// Slot states. Transitions are monotonic for the lifetime of a claim:
// slotNone -> slotHasItem or slotNone -> slotHasAwaiter; either terminal
// of a rendezvous transitions the slot to slotCleared.
const (
	slotNone int32 = iota
	slotHasItem
	slotHasAwaiter
	slotCleared
)

// segment is a fixed-capacity slot array that doubles as item storage and
// pending-consumer registration. Adapted from the cycle-tagged,
// FAA-claimed slot layout of code.hybscloud.com/lfq's bounded MPMC
// (mpmc.go), generalized here to an unbounded chain: instead of a single
// cycle counter per slot wrapping around a fixed ring, each slot carries
// an independent state tag and a segment is retired (not wrapped) once
// both its counters are exhausted.
type segment[T any] struct {
	_            pad
	itemIndex    atomix.Int64 // producer claim counter, starts at -1
	_            pad
	awaiterIndex atomix.Int64 // consumer claim counter, starts at -1
	_            pad

	id   uint64
	next atomic.Pointer[segment[T]]
	pool atomic.Pointer[segment[T]] // pool-stack link, distinct from next

	items    []T
	awaiters []atomic.Pointer[awaiter[T]]
	states   []atomix.Int32
}

func newSegment[T any](id uint64, size int) *segment[T] {
	s := &segment[T]{
		id:       id,
		items:    make([]T, size),
		awaiters: make([]atomic.Pointer[awaiter[T]], size),
		states:   make([]atomix.Int32, size),
	}
	s.itemIndex.StoreRelaxed(-1)
	s.awaiterIndex.StoreRelaxed(-1)
	return s
}

// resetForReuse prepares a pooled segment for re-exposure to producers.
// Per the pool-reuse contract: state arrays are cleared and claim
// counters reset BEFORE the segment is linked as a new tail, since a
// concurrent producer may race ahead the instant the counters reset.
func (s *segment[T]) resetForReuse(id uint64) {
	sw := spin.Wait{}
	for i := range s.states {
		for !s.states[i].CompareAndSwapAcqRel(slotCleared, slotNone) {
			if s.states[i].LoadAcquire() == slotNone {
				break
			}
			sw.Once()
		}
		s.awaiters[i].Store(nil)
		var zero T
		s.items[i] = zero
	}
	s.itemIndex.StoreRelaxed(-1)
	s.awaiterIndex.StoreRelaxed(-1)
	s.id = id
	s.next.Store(nil)
	s.pool.Store(nil)
}

// fullyClaimed reports whether both claim counters have been exhausted,
// i.e. the segment is eligible for pooling once no enumeration is active.
func (s *segment[T]) fullyClaimed(size int) bool {
	return s.itemIndex.LoadAcquire() >= int64(size) && s.awaiterIndex.LoadAcquire() >= int64(size)
}

// segmentPool is a lock-free singly-linked stack of segments released
// after draining, following the same Treiber-stack CAS-retry shape used
// throughout the wider lock-free pack for linked structures.
type segmentPool[T any] struct {
	head atomic.Pointer[segment[T]]
}

func (p *segmentPool[T]) push(s *segment[T]) {
	for {
		old := p.head.Load()
		s.pool.Store(old)
		if p.head.CompareAndSwap(old, s) {
			return
		}
	}
}

func (p *segmentPool[T]) pop() *segment[T] {
	for {
		old := p.head.Load()
		if old == nil {
			return nil
		}
		next := old.pool.Load()
		if p.head.CompareAndSwap(old, next) {
			return old
		}
	}
}

// pad is cache line padding to prevent false sharing between hot atomic
// counters, carried from code.hybscloud.com/lfq's options.go.
type pad [64]byte
