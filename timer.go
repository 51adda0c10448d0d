// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "time"

// PeriodicFlusher wraps a [BatchQueue] with a ticker that calls
// [BatchQueue.Flush] on a fixed period, so a partially-filled batch is
// still delivered to consumers even if producers never fill it the rest
// of the way.
type PeriodicFlusher[T any] struct {
	*BatchQueue[T]
	ticker *time.Ticker
	stop   chan struct{}
}

// NewPeriodicFlusher wraps bq, calling Flush every period until Close is
// called. period must be positive.
func NewPeriodicFlusher[T any](bq *BatchQueue[T], period time.Duration) (*PeriodicFlusher[T], error) {
	if period <= 0 {
		return nil, ErrInvalidArgument
	}
	f := &PeriodicFlusher[T]{
		BatchQueue: bq,
		ticker:     time.NewTicker(period),
		stop:       make(chan struct{}),
	}
	go f.run()
	return f, nil
}

func (f *PeriodicFlusher[T]) run() {
	for {
		select {
		case <-f.ticker.C:
			f.Flush()
		case <-f.stop:
			return
		}
	}
}

// Close stops the periodic flushing. It does not flush a final time —
// callers that need the last partial batch delivered should call Flush
// themselves before or after Close.
func (f *PeriodicFlusher[T]) Close() error {
	f.ticker.Stop()
	close(f.stop)
	return nil
}
