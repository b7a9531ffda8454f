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
	"context"
	"errors"

	"github.com/0xsoniclabs/attempt/common/future"
	"github.com/0xsoniclabs/attempt/common/outcome"
	"github.com/0xsoniclabs/attempt/common/result"
)

// RunAsync runs the given action on a new goroutine and waits for it to
// settle. The returned error is nil unless the call was cancelled through ctx,
// in which case it is the cancellation error and the outcome is meaningless.
// A nil ctx is treated as context.Background().
func RunAsync(ctx context.Context, action func(context.Context) error) (outcome.Outcome, error) {
	return Start(ctx, action).Await().Get()
}

// CallAsync runs the given function on a new goroutine and waits for it to
// settle. Cancellation is reported as for RunAsync.
func CallAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) (outcome.Value[T], error) {
	return StartCall(ctx, fn).Await().Get()
}

// ErrExited is the failure cause recorded for an asynchronous operation that
// ended its goroutine without returning or panicking, e.g. by calling
// runtime.Goexit.
var ErrExited = errors.New("operation exited its goroutine without returning")

// Start schedules the given action on a new goroutine and returns a future
// for its settlement. The settlement's error is set if and only if the action
// was cancelled; otherwise its value is the outcome of the action.
//
// If ctx is already done, the action is not invoked.
func Start(ctx context.Context, action func(context.Context) error) future.Future[result.Result[outcome.Outcome]] {
	checkOperation(action == nil, "action")
	settlement := launch(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, action(ctx)
	})
	return future.Then(settlement, func(settled result.Result[outcome.Value[struct{}]]) result.Result[outcome.Outcome] {
		return result.Of(settled.Value().Outcome(), settled.Error())
	})
}

// StartCall is the value-producing counterpart of Start.
func StartCall[T any](ctx context.Context, fn func(context.Context) (T, error)) future.Future[result.Result[outcome.Value[T]]] {
	checkOperation(fn == nil, "function")
	return launch(ctx, fn)
}

// launch runs fn on a new goroutine unless ctx is already done and converts
// how it ended into a settlement.
func launch[T any](ctx context.Context, fn func(context.Context) (T, error)) future.Future[result.Result[outcome.Value[T]]] {
	ctx = orBackground(ctx)
	if err := ctx.Err(); err != nil {
		return future.Immediate(result.Err[outcome.Value[T]](err))
	}
	invocation := future.Go(func() result.Result[T] {
		if err := ctx.Err(); err != nil {
			return result.Err[T](err)
		}
		var value T
		err := capture(func() (err error) {
			value, err = fn(ctx)
			return err
		})
		return result.Of(value, err)
	}, func() result.Result[T] {
		return result.Err[T](ErrExited)
	})
	return future.Then(invocation, func(invoked result.Result[T]) result.Result[outcome.Value[T]] {
		value, err := invoked.Get()
		if cancelled := cancellation(ctx, err); cancelled != nil {
			return result.Err[outcome.Value[T]](cancelled)
		}
		return result.Ok(toValue(value, err))
	})
}

// RunAll runs all given actions concurrently, each on its own goroutine, and
// waits for all of them to settle. The outcomes are listed in the order of the
// actions. If any action was cancelled, the first cancellation in that order
// is returned as the error; the outcomes of cancelled actions are meaningless.
func RunAll(ctx context.Context, actions ...func(context.Context) error) ([]outcome.Outcome, error) {
	for _, action := range actions {
		checkOperation(action == nil, "action")
	}
	pending := make([]future.Future[result.Result[outcome.Outcome]], len(actions))
	for i, action := range actions {
		pending[i] = Start(ctx, action)
	}

	var cancelled error
	outcomes := make([]outcome.Outcome, len(actions))
	for i, settled := range future.AwaitAll(pending...) {
		if !settled.IsOk() && cancelled == nil {
			cancelled = settled.Error()
		}
		outcomes[i] = settled.Value()
	}
	return outcomes, cancelled
}

// cancellation returns the error to propagate if err signals that the
// operation stopped because ctx was cancelled, nil otherwise. A cancellation
// error produced while ctx is still live is an ordinary failure.
func cancellation(ctx context.Context, err error) error {
	if err == nil || ctx.Err() == nil {
		return nil
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	// A panic carrying the cancellation is reported as the cancellation itself.
	var p *PanicError
	if errors.As(err, &p) && p.Unwrap() != nil {
		return p.Unwrap()
	}
	return err
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
