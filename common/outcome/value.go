// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package outcome

import "fmt"

// Value is the result of an operation producing a value of type T. On success
// it holds exactly the produced value, which may be nil for pointer, interface,
// slice or map types. A failed Value holds no meaningful value and reading it
// panics.
type Value[T any] struct {
	value T
	cause error
}

// SuccessOf creates a successful outcome holding the given value. Any value is
// accepted, including nil.
func SuccessOf[T any](value T) Value[T] {
	return Value[T]{value: value}
}

// FailureOf creates a failed outcome for an operation producing values of type
// T. The same validation rules as for Failure apply.
func FailureOf[T any](cause error) Value[T] {
	checkCause(cause)
	return Value[T]{cause: cause}
}

// FailureMessageOf creates a failed outcome from a plain message. The same
// validation rules as for FailureMessage apply.
func FailureMessageOf[T any](message string) Value[T] {
	return Value[T]{cause: causeFromMessage(message)}
}

// Value returns the value produced by the operation. Calling it on a failed
// outcome is a programming error and panics with an error wrapping
// ErrInvalidOperation; use Get or check Succeeded first.
func (v Value[T]) Value() T {
	if v.cause != nil {
		panic(fmt.Errorf("%w: cannot access the value of a failed outcome", ErrInvalidOperation))
	}
	return v.value
}

// Get returns the produced value and the failure cause. On failure the value
// is T's zero value and must not be used. Using this function forces the
// caller to handle potential errors.
func (v Value[T]) Get() (T, error) {
	if v.cause != nil {
		var zero T
		return zero, v.cause
	}
	return v.value, nil
}

func (v Value[T]) Succeeded() bool {
	return v.cause == nil
}

func (v Value[T]) Failed() bool {
	return v.cause != nil
}

func (v Value[T]) Cause() error {
	return v.cause
}

func (v Value[T]) Err() error {
	return v.cause
}

func (v Value[T]) ErrorMessage() string {
	return messageOf(v.cause)
}

// Outcome drops the value, keeping only whether the operation succeeded.
func (v Value[T]) Outcome() Outcome {
	return Outcome{cause: v.cause}
}

func (v Value[T]) String() string {
	if v.cause == nil {
		return fmt.Sprintf("success: %v", v.value)
	}
	return describe(v.cause)
}
