// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package try

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/panics"
)

// PanicError is the failure cause recorded for an operation that panicked.
type PanicError struct {
	recovered *panics.Recovered
}

// Error returns the text of the panic value: the message of an error value,
// the formatted value otherwise.
func (e *PanicError) Error() string {
	if err, ok := e.recovered.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.recovered.Value)
}

// Unwrap returns the panic value if it is an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	err, _ := e.recovered.Value.(error)
	return err
}

// Value returns the value passed to panic.
func (e *PanicError) Value() any {
	return e.recovered.Value
}

// Stack returns the formatted stack of the goroutine at the time of the panic.
func (e *PanicError) Stack() []byte {
	return e.recovered.Stack
}

// capture runs op and returns the error it produced, converting a panic into a
// *PanicError.
func capture(op func() error) (err error) {
	var catcher panics.Catcher
	catcher.Try(func() {
		err = op()
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return &PanicError{recovered: recovered}
	}
	return err
}

// silentError stands in for a failure whose message is blank. Outcomes require
// a readable reason, so the type of the original failure is reported instead.
type silentError struct {
	cause error
}

func (e *silentError) Error() string {
	if p, ok := e.cause.(*PanicError); ok {
		return fmt.Sprintf("operation panicked with %T value and no message", p.Value())
	}
	return fmt.Sprintf("operation failed with %T and no message", e.cause)
}

func (e *silentError) Unwrap() error {
	return e.cause
}

// describable returns err unchanged unless its message is blank.
func describable(err error) error {
	if strings.TrimSpace(err.Error()) == "" {
		return &silentError{cause: err}
	}
	return err
}
