// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package outcome provides immutable values describing how an operation ended.
//
// An [Outcome] records the completion of an operation that produces no value,
// a [Value] additionally carries the produced value on success. A failed
// outcome always carries a non-nil cause with a non-blank message; the cause is
// kept as it was raised, so wrapped errors, stack traces and other diagnostic
// detail remain available through errors.Is and errors.As.
//
// Outcomes are created through the factories only:
//
//	ok := outcome.Success()
//	bad := outcome.Failure(err)
//	msg := outcome.FailureMessage("disk full")
//	val := outcome.SuccessOf(42)
//
// Misuse of the API, like creating a failure without a reason or reading the
// value of a failed outcome, is a bug in the calling code and panics with an
// error wrapping [ErrInvalidArgument] or [ErrInvalidOperation].
package outcome

import (
	"fmt"
	"strings"
)

// Outcome is the result of an operation that does not produce a value. The
// zero value is a successful outcome.
type Outcome struct {
	cause error // < nil if and only if the operation succeeded
}

// Success creates an outcome describing a normally completed operation.
func Success() Outcome {
	return Outcome{}
}

// Failure creates an outcome describing an operation that failed with the
// given cause. The cause must not be nil and must have a non-blank message,
// otherwise Failure panics with an error wrapping ErrInvalidArgument.
func Failure(cause error) Outcome {
	checkCause(cause)
	return Outcome{cause: cause}
}

// FailureMessage creates a failed outcome whose cause carries the given
// message. Empty or whitespace-only messages are rejected with a panic
// wrapping ErrInvalidArgument.
func FailureMessage(message string) Outcome {
	return Outcome{cause: causeFromMessage(message)}
}

// Succeeded reports whether the operation completed normally.
func (o Outcome) Succeeded() bool {
	return o.cause == nil
}

// Failed reports whether the operation failed. It is always the negation of
// Succeeded.
func (o Outcome) Failed() bool {
	return o.cause != nil
}

// Cause returns the failure that ended the operation, or nil on success.
func (o Outcome) Cause() error {
	return o.cause
}

// Err is an alias of Cause, allowing an outcome to be checked like a plain
// error return.
func (o Outcome) Err() error {
	return o.cause
}

// ErrorMessage returns the message of the failure cause, or the empty string
// for a successful outcome.
func (o Outcome) ErrorMessage() string {
	return messageOf(o.cause)
}

func (o Outcome) String() string {
	return describe(o.cause)
}

func checkCause(cause error) {
	if cause == nil {
		panic(fmt.Errorf("%w: failure cause must not be nil", ErrInvalidArgument))
	}
	if strings.TrimSpace(cause.Error()) == "" {
		panic(fmt.Errorf("%w: failure cause must have a non-empty message", ErrInvalidArgument))
	}
}

func causeFromMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		panic(fmt.Errorf("%w: failure message must not be empty", ErrInvalidArgument))
	}
	return messageError(message)
}

func messageOf(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}

func describe(cause error) string {
	if cause == nil {
		return "success"
	}
	return "failure: " + cause.Error()
}
