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

import "errors"

var (
	// ErrInvalidArgument is wrapped by the panics raised when the API is called
	// with arguments violating its contract, e.g. a failure without a reason.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation is wrapped by the panic raised when the value of a
	// failed outcome is accessed.
	ErrInvalidOperation = errors.New("invalid operation")
)

// messageError is the cause of failures created from a plain message.
type messageError string

func (e messageError) Error() string {
	return string(e)
}
