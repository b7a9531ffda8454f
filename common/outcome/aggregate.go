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

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Flatten combines the given reports into a single outcome. The result is a
// success if every report succeeded, including the case of no reports at all.
// Otherwise it is a failure whose message lists the messages of all failed
// reports, in input order, separated by newlines. Each individual cause stays
// reachable through errors.Is and errors.As on the combined cause.
//
// A nil report is an invalid argument and causes a panic.
func Flatten(reports ...Report) Outcome {
	var causes []error
	for i, report := range reports {
		checkReport(i, report)
		if report.Failed() {
			cause := report.Cause()
			if cause == nil {
				panic(fmt.Errorf("%w: failed report at position %d has no cause", ErrInvalidArgument, i))
			}
			causes = append(causes, cause)
		}
	}
	if len(causes) == 0 {
		return Success()
	}
	// Causes are kept as they are; multierror.Append would unpack nested
	// multierrors and lose their own rendering.
	return Failure(&multierror.Error{Errors: causes, ErrorFormat: joinLines})
}

// AnyFailed reports whether at least one of the given reports failed. It is
// false for an empty argument list.
func AnyFailed(reports ...Report) bool {
	res := false
	for i, report := range reports {
		checkReport(i, report)
		res = res || report.Failed()
	}
	return res
}

// AllSucceeded reports whether every given report succeeded. It is true for an
// empty argument list.
func AllSucceeded(reports ...Report) bool {
	return !AnyFailed(reports...)
}

// FlattenValues is Flatten for a list of value outcomes of the same type.
func FlattenValues[T any](values ...Value[T]) Outcome {
	return Flatten(Reports(values)...)
}

// AnyFailedValues is AnyFailed for a list of value outcomes of the same type.
func AnyFailedValues[T any](values ...Value[T]) bool {
	return AnyFailed(Reports(values)...)
}

// AllSucceededValues is AllSucceeded for a list of value outcomes of the same
// type.
func AllSucceededValues[T any](values ...Value[T]) bool {
	return AllSucceeded(Reports(values)...)
}

// Reports converts a list of outcomes of any single type into a list of
// reports, as needed to pass it to Flatten, AnyFailed or AllSucceeded.
func Reports[R Report](list []R) []Report {
	reports := make([]Report, len(list))
	for i, r := range list {
		reports[i] = r
	}
	return reports
}

func checkReport(pos int, report Report) {
	if report == nil {
		panic(fmt.Errorf("%w: report at position %d is nil", ErrInvalidArgument, pos))
	}
}

// joinLines renders a combined failure as one line per cause.
func joinLines(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}
