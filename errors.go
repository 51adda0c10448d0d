// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a synchronous try-operation cannot proceed
// immediately (a container is momentarily empty).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// [code.hybscloud.com/lfq], which surfaces the same sentinel from its
// bounded queues.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidArgument is returned from construction (non-positive batch
// size, priority levels outside [1, 32]) and from [TakeFromAny] (empty or
// oversized collection slice).
var ErrInvalidArgument = errors.New("asyncq: invalid argument")

// ErrCanceled is surfaced through a [Future] when the cancellation signal
// supplied to Take fires before a value arrives. It is never returned from
// a synchronous entry point.
var ErrCanceled = errors.New("asyncq: canceled")

// ErrIndexOutOfRange is returned by [Batch.At] when the index is outside
// [0, Len()).
var ErrIndexOutOfRange = errors.New("asyncq: index out of range")

// IsWouldBlock reports whether err indicates a try-operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a failure.
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsCanceled reports whether err is (or wraps) [ErrCanceled].
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsInvalidArgument reports whether err is (or wraps) [ErrInvalidArgument].
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsIndexOutOfRange reports whether err is (or wraps) [ErrIndexOutOfRange].
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
