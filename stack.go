// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// NewStack constructs an async-consumable LIFO collection: the most
// recently Added item is the next one a Take resolves.
func NewStack[T any]() *Collection[T] {
	return NewCollection[T](NewLIFOContainer[T]())
}
