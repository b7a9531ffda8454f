// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package result

// Result encapsulates a value along with an error. It is intended to be used
// in scenarios where a single type is needed to represent the outcome of an
// operation that can either succeed with a value of type T or fail with an
// error. This may, for instance, be useful for channels, futures or containers.
//
// Unlike the outcome package, a Result places no constraints on its error; it
// is a plain pairing of the two return values of a Go function.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a Result representing a successful outcome with the given value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a Result representing a failed outcome with the given error.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of pairs the results of a function call returning a value and an error.
// Both are retained, even if err is not nil.
func Of[T any](value T, err error) Result[T] {
	return Result[T]{value: value, err: err}
}

// Get returns the value and error contained in the Result. Using this function
// forces the caller to handle potential errors.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Value returns the contained value, regardless of the error.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the contained error, nil for a successful Result.
func (r Result[T]) Error() error {
	return r.err
}

// IsOk is true if the Result carries no error.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}
