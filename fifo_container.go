// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// FIFOContainer is a [Container] backed directly by a [Queue], giving
// [Collection] first-in-first-out ordering. A Queue already satisfies
// [Container] on its own; FIFOContainer exists so callers constructing a
// [Collection] have a named, discoverable type to reach for instead of
// reusing Queue by coincidence of shape.
type FIFOContainer[T any] struct {
	*Queue[T]
}

// NewFIFOContainer constructs a FIFO-ordered container for use with
// [NewCollection].
func NewFIFOContainer[T any](opts ...Option[T]) *FIFOContainer[T] {
	return &FIFOContainer[T]{Queue: NewQueue[T](opts...)}
}
