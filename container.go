// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// Container is the synchronous, thread-safe storage backing a
// [Collection]. Implementations must never block: TryAdd succeeds for
// every item the container accepts ([PriorityContainer] rejects an
// out-of-range priority with [ErrInvalidArgument]), and TryTake reports
// [ErrWouldBlock] instead of waiting when empty.
//
// Shaped after code.hybscloud.com/lfq's Producer[T]/Consumer[T]
// interfaces (types.go), merged into one interface since a Collection
// always needs both sides of a single container.
type Container[T any] interface {
	TryAdd(item T) error
	TryTake() (T, error)
	Count() int
}

var (
	_ Container[int] = (*Queue[int])(nil)
	_ Container[int] = (*FIFOContainer[int])(nil)
	_ Container[int] = (*LIFOContainer[int])(nil)
)
