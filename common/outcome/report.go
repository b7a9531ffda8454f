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

//go:generate mockgen -source report.go -destination report_mocks.go -package outcome

// Report is the read-only view of an outcome consumed by the aggregation
// functions. Both Outcome and Value implement it.
type Report interface {
	// Failed reports whether the described operation failed.
	Failed() bool
	// Cause returns the failure of the operation, nil if it succeeded.
	Cause() error
}

var (
	_ Report = Outcome{}
	_ Report = Value[int]{}
)
