// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"math/bits"

	"code.hybscloud.com/atomix"
)

// maxPriorityLevels is the largest K accepted by [NewPriorityContainer]:
// priorities are tracked in a single 32-bit occupancy bitset, one bit per
// lane.
const maxPriorityLevels = 32

// Prioritized pairs a value with the lane it was added to. Lane 0 is
// highest priority.
type Prioritized[T any] struct {
	Value    T
	Priority int
}

// PriorityContainer is a [Container] of K independent FIFO lanes (K<=32),
// giving [Collection] strict-priority ordering: TryTake always drains the
// lowest-numbered non-empty lane first. Built from [FIFOContainer] lanes
// plus an atomix.Uint32 occupancy bitset so TryTake can locate the
// highest-priority non-empty lane with [math/bits.TrailingZeros32] instead
// of scanning every lane on every call.
type PriorityContainer[T any] struct {
	lanes    []*FIFOContainer[T]
	occupied atomix.Uint32
}

// NewPriorityContainer constructs a priority container with levels
// distinct priority lanes (levels in [1, 32]).
func NewPriorityContainer[T any](levels int) (*PriorityContainer[T], error) {
	if levels <= 0 || levels > maxPriorityLevels {
		return nil, ErrInvalidArgument
	}
	lanes := make([]*FIFOContainer[T], levels)
	for i := range lanes {
		lanes[i] = NewFIFOContainer[T]()
	}
	return &PriorityContainer[T]{lanes: lanes}, nil
}

// TryAdd pushes item.Value onto lane item.Priority. Returns
// [ErrInvalidArgument] if the priority is outside the configured range.
func (p *PriorityContainer[T]) TryAdd(item Prioritized[T]) error {
	if item.Priority < 0 || item.Priority >= len(p.lanes) {
		return ErrInvalidArgument
	}
	_ = p.lanes[item.Priority].TryAdd(item.Value)
	bit := uint32(1) << uint(item.Priority)
	for {
		old := p.occupied.LoadAcquire()
		if old&bit != 0 || p.occupied.CompareAndSwapAcqRel(old, old|bit) {
			break
		}
	}
	return nil
}

// TryTake pops from the lowest-numbered non-empty lane. Reports
// [ErrWouldBlock] when every lane is empty.
func (p *PriorityContainer[T]) TryTake() (Prioritized[T], error) {
	for {
		mask := p.occupied.LoadAcquire()
		if mask == 0 {
			return Prioritized[T]{}, ErrWouldBlock
		}
		lane := bits.TrailingZeros32(mask)
		v, err := p.lanes[lane].TryTake()
		if err == nil {
			return Prioritized[T]{Value: v, Priority: lane}, nil
		}
		// Lane drained by a racing consumer between the load and the
		// take: clear its bit (re-set by a racing producer is fine,
		// this is an optimization, not a correctness requirement) and
		// retry.
		bit := uint32(1) << uint(lane)
		for {
			old := p.occupied.LoadAcquire()
			if old&bit == 0 || p.occupied.CompareAndSwapAcqRel(old, old&^bit) {
				break
			}
		}
	}
}

// Count returns an approximate snapshot of the number of resident items
// across all lanes.
func (p *PriorityContainer[T]) Count() int {
	n := 0
	for _, lane := range p.lanes {
		n += lane.Count()
	}
	return n
}
