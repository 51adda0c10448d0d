// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// queueOptions collects [Option] settings for [NewQueue]. Adapted from
// code.hybscloud.com/lfq's options.go Builder, traded for the functional-
// options idiom since a Queue has no algorithm variant to select — only a
// couple of independent, optional knobs.
type queueOptions[T any] struct {
	segmentSize  int
	initialItems []T
}

// Option configures a [Queue] at construction time.
type Option[T any] func(*queueOptions[T])

// WithSegmentSize overrides the fixed per-segment slot count N (default
// 32). Panics if n is not positive.
func WithSegmentSize[T any](n int) Option[T] {
	if n <= 0 {
		panic("asyncq: segment size must be positive")
	}
	return func(o *queueOptions[T]) {
		o.segmentSize = n
	}
}

// WithInitialItems seeds the queue with items at construction, as if each
// had been passed to Add in order before any caller could observe the
// queue.
func WithInitialItems[T any](items ...T) Option[T] {
	return func(o *queueOptions[T]) {
		o.initialItems = append(o.initialItems[:0:0], items...)
	}
}
