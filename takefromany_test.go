// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/asyncq"
)

// =============================================================================
// TakeFromAny - Arbitration Across Collections
// =============================================================================

func TestTakeFromAnyResolvesFromReadyCollection(t *testing.T) {
	a := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
	b := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
	b.Add("hello")

	r, err := asyncq.TakeFromAny(context.Background(), a, b).Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if r.Value != "hello" || r.Index != 1 {
		t.Fatalf("got %+v, want {hello 1}", r)
	}
}

func TestTakeFromAnyResolvesFromLaterAdd(t *testing.T) {
	a := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	b := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())

	f := asyncq.TakeFromAny(context.Background(), a, b)

	done := make(chan struct{})
	go func() {
		a.Add(7)
		close(done)
	}()
	<-done

	r, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if r.Value != 7 || r.Index != 0 {
		t.Fatalf("got %+v, want {7 0}", r)
	}
}

func TestTakeFromAnyInvalidArgument(t *testing.T) {
	_, err := asyncq.TakeFromAny[int](context.Background()).Wait(context.Background())
	if !errors.Is(err, asyncq.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}

	many := make([]*asyncq.Collection[int], 33)
	for i := range many {
		many[i] = asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	}
	_, err = asyncq.TakeFromAny(context.Background(), many...).Wait(context.Background())
	if !errors.Is(err, asyncq.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestTakeFromAnyCancel(t *testing.T) {
	a := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	b := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := asyncq.TakeFromAny(ctx, a, b).Wait(context.Background())
	if !errors.Is(err, asyncq.ErrCanceled) {
		t.Fatalf("got %v, want ErrCanceled", err)
	}
}

// TestTakeFromAnyPrefersLowestIndexWhenBothReady is scenario 6: when
// multiple collections already hold an item at call time, the
// lowest-indexed collection must win deterministically, not whichever
// goroutine the scheduler happens to run first.
func TestTakeFromAnyPrefersLowestIndexWhenBothReady(t *testing.T) {
	a := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	b := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	a.Add(10)
	b.Add(20)

	for i := 0; i < 50; i++ {
		r, err := asyncq.TakeFromAny(context.Background(), a, b).Wait(context.Background())
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
		if r.Value != 10 || r.Index != 0 {
			t.Fatalf("got %+v, want {10 0}", r)
		}
		a.Add(10)
	}
}

func TestTakeFromAnyOnlyOneWinnerConsumesItem(t *testing.T) {
	a := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	b := asyncq.NewCollection[int](asyncq.NewFIFOContainer[int]())
	a.Add(1)
	b.Add(2)

	r, err := asyncq.TakeFromAny(context.Background(), a, b).Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	// The ordered pre-pass guarantees the lowest index wins when both
	// are already ready.
	if r.Value != 1 || r.Index != 0 {
		t.Fatalf("got %+v, want {1 0}", r)
	}

	// b's item must not have been lost: it was never touched by the
	// pre-pass since it stopped at a's hit.
	remaining, err := b.Take(context.Background()).Wait(context.Background())
	if err != nil || remaining != 2 {
		t.Fatalf("collection b: got (%d, %v), want (2, nil)", remaining, err)
	}
}
