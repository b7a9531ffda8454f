// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package diagnostics

import (
	ctxpkg "context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/0xsoniclabs/attempt/common/outcome"
	"github.com/0xsoniclabs/attempt/try"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// AddPerformanceDiagnosticsAction wraps an action function to add performance diagnostics
// such as CPU profiling, tracing, and a diagnostic server.
// It takes the action function and flags for diagnostics, CPU profiling, and tracing.
// The diagnosticsFlag must be an integer, and it starts diagnostic server at the port parsed from this flag,
// cpuProfileFlag is a string that starts CPU profiling giving the file name from this flag,
// and traceFlag is a string that starts tracing giving the file name from this flag.
//
// Profiler and tracer are both attempted before the action is run. If either
// fails to start, the action is not run and the returned error lists the
// reasons of all failed steps, one per line.
func AddPerformanceDiagnosticsAction(action cli.ActionFunc, diagnosticsFlag *cli.IntFlag, cpuProfileFlag, traceFlag *cli.StringFlag) cli.ActionFunc {
	return func(context *cli.Context) error {

		// Start the diagnostic service if requested.
		diagnosticPort := context.Int(diagnosticsFlag.Names()[0])
		startDiagnosticServer(context.Context, diagnosticPort)

		// Start CPU profiling.
		cpuProfiling := outcome.Success()
		cpuProfileFileName := context.String(cpuProfileFlag.Names()[0])
		if strings.TrimSpace(cpuProfileFileName) != "" {
			profile := try.Call(func() (*os.File, error) {
				return startCpuProfiler(cpuProfileFileName)
			})
			if profile.Succeeded() {
				defer stopCpuProfiler(profile.Value())
			}
			cpuProfiling = profile.Outcome()
		}

		// Start recording a trace.
		tracing := outcome.Success()
		traceFileName := context.String(traceFlag.Names()[0])
		if strings.TrimSpace(traceFileName) != "" {
			traceFile := try.Call(func() (*os.File, error) {
				return startTracer(traceFileName)
			})
			if traceFile.Succeeded() {
				defer stopTracer(traceFile.Value())
			}
			tracing = traceFile.Outcome()
		}

		if setup := outcome.Flatten(cpuProfiling, tracing); setup.Failed() {
			return setup.Cause()
		}
		return action(context)
	}
}

func startDiagnosticServer(ctx ctxpkg.Context, port int) {
	if port <= 0 || port >= (1<<16) {
		return
	}
	logger := log.Ctx(ctx)
	logger.Info().
		Int("port", port).
		Msgf("Starting diagnostic server at http://localhost:%d (see https://pkg.go.dev/net/http/pprof#hdr-Usage_examples)", port)
	logger.Warn().Msg("Block and mutex sampling rate is set to 100% for diagnostics, which may impact overall performance")
	go func() {
		addr := fmt.Sprintf("localhost:%d", port)
		logger.Error().Err(http.ListenAndServe(addr, nil)).Msg("diagnostic server stopped")
	}()
	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)
}

// startCpuProfiler starts profiling into the given file. The returned file
// must be passed to stopCpuProfiler.
func startCpuProfiler(filename string) (*os.File, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return f, nil
}

func stopCpuProfiler(f *os.File) error {
	pprof.StopCPUProfile()
	return f.Close()
}

// startTracer starts recording a trace into the given file. The returned file
// must be passed to stopTracer.
func startTracer(filename string) (*os.File, error) {
	traceFile, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(traceFile); err != nil {
		traceFile.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	return traceFile, nil
}

func stopTracer(f *os.File) error {
	trace.Stop()
	return f.Close()
}
