// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"sync"

	"code.hybscloud.com/atomix"
)

const (
	groupLocked int32 = iota
	groupUnlocked
	groupResolved
	groupCanceled
)

// awaiterGroup is an exclusive awaiter group (component E): up to 32
// child awaiters are created while the group is locked, and at most one
// of them is ever allowed to resolve the group — the rest, on their own
// eventual completion, discover the group already resolved and become
// no-ops. Used by [TakeFromAny] to race several collections' awaiters
// against each other without letting more than one silently consume an
// item.
type awaiterGroup[T any] struct {
	state   atomix.Int32
	created atomix.Uint32 // bitset: which child indices were created
	once    sync.Once
	result  Result[T]
	err     error
	done    chan struct{}
}

func newAwaiterGroup[T any]() *awaiterGroup[T] {
	return &awaiterGroup[T]{done: make(chan struct{})}
}

// createAwaiter registers child index as created. Valid only while the
// group is locked; the caller is responsible for calling this before
// unlock for every child it intends to race.
func (g *awaiterGroup[T]) createAwaiter(index int) {
	for {
		old := g.created.LoadAcquire()
		bit := uint32(1) << uint(index)
		if old&bit != 0 || g.created.CompareAndSwapAcqRel(old, old|bit) {
			return
		}
	}
}

// unlock transitions the group from locked to unlocked, after which
// child completions are free to race for resolution. Idempotent.
func (g *awaiterGroup[T]) unlock() {
	g.state.CompareAndSwapAcqRel(groupLocked, groupUnlocked)
}

// tryResolve attempts to resolve the group with value v from child
// index. Returns false if the group was already resolved or canceled by
// another child — the caller should treat this as "discard, someone else
// won."
func (g *awaiterGroup[T]) tryResolve(index int, v T) bool {
	if !g.state.CompareAndSwapAcqRel(groupUnlocked, groupResolved) {
		return false
	}
	g.once.Do(func() {
		g.result = Result[T]{Value: v, Index: index}
		close(g.done)
	})
	return true
}

// tryCancelAll resolves the group as canceled. Used when the caller's
// context is done before any child resolves.
func (g *awaiterGroup[T]) tryCancelAll() bool {
	if !g.state.CompareAndSwapAcqRel(groupUnlocked, groupCanceled) {
		return false
	}
	g.once.Do(func() {
		g.err = ErrCanceled
		close(g.done)
	})
	return true
}
