// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/asyncq"
)

// =============================================================================
// Collection - FIFO/LIFO/Priority Adapters
// =============================================================================

func TestCollectionFIFOProducerFirst(t *testing.T) {
	c := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	c.Add(1)
	c.Add(2)

	for _, want := range []int{1, 2} {
		v, err := c.Take(context.Background()).Wait(context.Background())
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		if v != want {
			t.Fatalf("Take: got %d, want %d", v, want)
		}
	}
}

func TestCollectionConsumerFirst(t *testing.T) {
	c := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	f := c.Take(context.Background())

	done := make(chan struct{})
	go func() {
		c.Add(99)
		close(done)
	}()
	<-done

	v, err := f.Wait(context.Background())
	if err != nil || v != 99 {
		t.Fatalf("got (%d, %v), want (99, nil)", v, err)
	}
}

func TestCollectionTakeCancel(t *testing.T) {
	c := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	ctx, cancel := context.WithCancel(context.Background())
	f := c.Take(ctx)
	cancel()

	if _, err := f.Wait(context.Background()); !errors.Is(err, asyncq.ErrCanceled) {
		t.Fatalf("Wait after cancel: got %v, want ErrCanceled", err)
	}

	c.Add(3)
	v, err := c.Take(context.Background()).Wait(context.Background())
	if err != nil || v != 3 {
		t.Fatalf("Take after cancel-retry: got (%d, %v), want (3, nil)", v, err)
	}
}

func TestStackLIFOOrder(t *testing.T) {
	s := asyncq.NewStack[int]()
	s.Add(1)
	s.Add(2)
	s.Add(3)

	for _, want := range []int{3, 2, 1} {
		v, err := s.Take(context.Background()).Wait(context.Background())
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		if v != want {
			t.Fatalf("Take: got %d, want %d", v, want)
		}
	}
}

func TestPriorityQueueOrder(t *testing.T) {
	pq, err := asyncq.NewPriorityQueue[string](3)
	if err != nil {
		t.Fatalf("NewPriorityQueue: %v", err)
	}

	if err := pq.Add("low", 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := pq.Add("high", 0); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := pq.Add("mid", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for _, want := range []string{"high", "mid", "low"} {
		v, err := pq.Take(context.Background()).Wait(context.Background())
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		if v != want {
			t.Fatalf("Take: got %q, want %q", v, want)
		}
	}
}

func TestPriorityQueueInvalidLevels(t *testing.T) {
	if _, err := asyncq.NewPriorityQueue[int](0); !errors.Is(err, asyncq.ErrInvalidArgument) {
		t.Fatalf("NewPriorityQueue(0): got %v, want ErrInvalidArgument", err)
	}
	if _, err := asyncq.NewPriorityQueue[int](33); !errors.Is(err, asyncq.ErrInvalidArgument) {
		t.Fatalf("NewPriorityQueue(33): got %v, want ErrInvalidArgument", err)
	}
}

func TestPriorityQueueInvalidPriority(t *testing.T) {
	pq, err := asyncq.NewPriorityQueue[int](2)
	if err != nil {
		t.Fatalf("NewPriorityQueue: %v", err)
	}
	if err := pq.Add(1, 5); !errors.Is(err, asyncq.ErrInvalidArgument) {
		t.Fatalf("Add out-of-range priority: got %v, want ErrInvalidArgument", err)
	}
}

func TestCollectionFromSeed(t *testing.T) {
	fifo := asyncq.NewFIFOContainer[int]()
	fifo.Add(1)
	fifo.Add(2)

	c := asyncq.NewCollectionFromSeed[int](fifo)
	if n := c.Count(); n != 2 {
		t.Fatalf("Count: got %d, want 2", n)
	}

	v, err := c.Take(context.Background()).Wait(context.Background())
	if err != nil || v != 1 {
		t.Fatalf("Take: got (%d, %v), want (1, nil)", v, err)
	}
}
