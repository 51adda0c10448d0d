// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asyncq provides lock-free, thread-safe producer/consumer
// containers whose consumers retrieve items asynchronously.
//
// Producers never block. Consumers receive either an immediately-available
// value or a [Future] that resolves when a value arrives, or when the
// caller's [context.Context] is canceled. Unlike [code.hybscloud.com/lfq],
// whose queues are bounded ring buffers with synchronous try-enqueue and
// try-dequeue, the containers here are unbounded and pair a slow consumer
// with a fast-arriving item via a rendezvous protocol instead of spinning
// the consumer to completion.
//
// # Quick Start
//
//	q := asyncq.NewQueue[int]()
//	q.Add(42)
//	f := q.Take(context.Background())
//	v, err := f.Wait(context.Background()) // v == 42
//
// Consumer-first also works — Take may be called before any item exists:
//
//	f := q.Take(context.Background())
//	go q.Add(42)
//	v, _ := f.Wait(context.Background()) // v == 42
//
// # Collections
//
// [Collection] adapts any thread-safe [Container] (FIFO, LIFO, or
// priority-lane) into an async-consumable collection using a signed
// item/awaiter balance:
//
//	c := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
//	c.Add("hello")
//	f := c.Take(context.Background())
//
// [NewStack], [NewPriorityQueue], and [NewBoundedPriorityQueue] are thin
// wrappers over [Collection] for the LIFO and priority containers.
//
// # Waiting on several collections at once
//
// [TakeFromAny] arbitrates between up to 32 collections and resolves with
// the first available item, tagged by which collection produced it:
//
//	r, err := asyncq.TakeFromAny(ctx, a, b, c).Wait(ctx)
//	fmt.Println(r.Value, r.Index)
//
// # Batching
//
// [BatchQueue] accumulates producer items into fixed-size batches and
// surfaces whole batches to consumers:
//
//	bq, _ := asyncq.NewBatchQueue[int](3)
//	bq.Add(0)
//	bq.Add(1)
//	bq.Add(42)
//	batch, _ := bq.Take(context.Background()).Wait(context.Background())
//	// batch.Len() == 3
//
// [NewPeriodicFlusher] wraps a [BatchQueue] with a ticker that calls
// [BatchQueue.Flush] on a fixed period, so a partially-filled batch is
// still delivered eventually.
//
// # Error Handling
//
// The hot paths never return errors. Enumerated error kinds:
//
//	asyncq.ErrInvalidArgument  — bad constructor arguments, bad TakeFromAny input
//	asyncq.ErrCanceled         — surfaced through a Future, never thrown synchronously
//	asyncq.ErrIndexOutOfRange  — indexing a Batch past its Len()
//
// For semantic classification (delegates to iox for the shared sentinels):
//
//	asyncq.IsWouldBlock(err)
//	asyncq.IsCanceled(err)
//	asyncq.IsInvalidArgument(err)
//
// # Ordering
//
// Within a single segment of a [Queue], an item claimed at index i is
// delivered to the consumer that claims index i in the same segment.
// Across segments there is no global FIFO guarantee — producers that race
// past the tail may land on different segments. [Collection] orders items
// however its underlying [Container] does.
//
// # Concurrency Model
//
// No operation holds a lock. Bounded spinning (via
// [code.hybscloud.com/spin.Wait]) is used only at well-defined rendezvous
// points: a pooled segment's reset waiting for a slot to be cleared, a
// producer waiting for a late-writing awaiter handle to become visible,
// a batch publisher waiting for a late-writing batch slot flag, and an
// iteration waiting out a segment's transfer to the pool. Segment growth
// does not wait: every party that needs the next segment tries to publish
// its own candidate by CAS and adopts the winner's on failure. All other
// paths are CAS-retry loops.
//
// A [Future]'s continuation is never invoked synchronously on the thread
// that completed it — see [Future.Wait] and [Future.Done].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions — the
// same ambient stack as [code.hybscloud.com/lfq].
package asyncq
