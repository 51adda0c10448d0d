// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq_test

import (
	"context"
	"fmt"

	"code.hybscloud.com/asyncq"
)

// ExampleQueue demonstrates producer-first use of a segmented async queue.
func ExampleQueue() {
	q := asyncq.NewQueue[int]()
	q.Add(42)

	v, err := q.Take(context.Background()).Wait(context.Background())
	fmt.Println(v, err)
	// Output: 42 <nil>
}

// ExampleCollection demonstrates adapting a FIFO container for async
// consumption.
func ExampleCollection() {
	c := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
	c.Add("hello")

	v, _ := c.Take(context.Background()).Wait(context.Background())
	fmt.Println(v)
	// Output: hello
}

// ExampleNewStack demonstrates last-in-first-out delivery order.
func ExampleNewStack() {
	s := asyncq.NewStack[int]()
	s.Add(1)
	s.Add(2)
	s.Add(3)

	for range 3 {
		v, _ := s.Take(context.Background()).Wait(context.Background())
		fmt.Println(v)
	}
	// Output:
	// 3
	// 2
	// 1
}

// ExampleTakeFromAny demonstrates arbitrating between multiple
// collections. When more than one is already ready, the lowest-indexed
// collection wins.
func ExampleTakeFromAny() {
	a := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
	b := asyncq.NewCollection[string](asyncq.NewFIFOContainer[string]())
	a.Add("from a")
	b.Add("from b")

	r, _ := asyncq.TakeFromAny(context.Background(), a, b).Wait(context.Background())
	fmt.Println(r.Value, r.Index)
	// Output: from a 0
}

// ExampleBatchQueue demonstrates accumulating items into a fixed-size
// batch.
func ExampleBatchQueue() {
	bq, _ := asyncq.NewBatchQueue[int](3)
	bq.Add(10)
	bq.Add(20)
	bq.Add(30)

	batch, _ := bq.Take(context.Background()).Wait(context.Background())
	for i := 0; i < batch.Len(); i++ {
		v, _ := batch.At(i)
		fmt.Println(v)
	}
	// Output:
	// 10
	// 20
	// 30
}
