// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package try runs caller-supplied operations under failure containment and
// reports how they ended as values of the outcome package.
//
// An operation fails either by returning a non-nil error or by panicking. Both
// are captured: a returned error becomes the cause of the failed outcome as it
// is, a panic is captured as a *PanicError holding the panic value and the
// stack of the panicking goroutine. The wrapper never retries, never alters a
// failure's message and keeps no state between calls, so it may be used
// concurrently without synchronization.
//
// The synchronous forms run the operation on the calling goroutine:
//
//	res := try.Run(func() error {
//	   return os.Remove(path)
//	})
//	if res.Failed() {
//	   ...
//	}
//
// The asynchronous forms run it on a new goroutine and take a context as the
// cancellation signal. A cancellation honored by the operation is not a
// failure; it is returned as a separate error so callers can tell "asked to
// stop" from "broke":
//
//	content, err := try.CallAsync(ctx, readConfig)
//	if err != nil {
//	   return err // cancelled
//	}
//	if content.Failed() {
//	   ...
//	}
//
// Passing a nil operation is a bug in the caller; it panics with an error
// wrapping outcome.ErrInvalidArgument before anything is run.
package try

import (
	"fmt"

	"github.com/0xsoniclabs/attempt/common/outcome"
)

// Run invokes the given action on the calling goroutine and reports whether it
// completed normally.
func Run(action func() error) outcome.Outcome {
	checkOperation(action == nil, "action")
	return toOutcome(capture(action))
}

// Call invokes the given function on the calling goroutine and reports its
// result. If fn returns a non-nil error, the value it returned is discarded.
func Call[T any](fn func() (T, error)) outcome.Value[T] {
	checkOperation(fn == nil, "function")
	var value T
	err := capture(func() (err error) {
		value, err = fn()
		return err
	})
	return toValue(value, err)
}

func toOutcome(err error) outcome.Outcome {
	if err != nil {
		return outcome.Failure(describable(err))
	}
	return outcome.Success()
}

func toValue[T any](value T, err error) outcome.Value[T] {
	if err != nil {
		return outcome.FailureOf[T](describable(err))
	}
	return outcome.SuccessOf(value)
}

func checkOperation(missing bool, kind string) {
	if missing {
		panic(fmt.Errorf("%w: %s must not be nil", outcome.ErrInvalidArgument, kind))
	}
}
