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
	"bytes"
	"context"
	"io/fs"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestAddPerformanceDiagnosticsAction(t *testing.T) {
	dir := t.TempDir()
	called := false
	action := func(ctx *cli.Context) error {
		// profile file created
		require.FileExists(t, path.Join(dir, "cpu.profile"))
		require.FileExists(t, path.Join(dir, "tracer.out"))

		// server started
		var statusCode int
		var counter int
		const loops = 10
		var lastHttpGetErr error
		wait := 100 * time.Millisecond
		for statusCode != http.StatusOK && counter < loops {
			resp, err := http.Get("http://localhost:6061/debug/pprof/")
			lastHttpGetErr = err
			if resp != nil {
				statusCode = resp.StatusCode
				resp.Body.Close()
			}
			counter++
			time.Sleep(wait)
			wait *= 2
		}

		require.NoError(t, lastHttpGetErr)
		require.Equal(t, http.StatusOK, statusCode)

		called = true
		return nil
	}

	app := newTestApp(action)
	set := []string{"cmd", "--diagnostics", "6061", "--cpu-profile", path.Join(dir, "cpu.profile"), "--trace", path.Join(dir, "tracer.out")}
	err := app.RunContext(context.Background(), set)
	require.NoError(t, err)

	require.True(t, called, "action should be called")
}

func TestAddPerformanceDiagnosticsAction_NoDiagnosticsRequested_RunsAction(t *testing.T) {
	called := false
	app := newTestApp(func(*cli.Context) error {
		called = true
		return nil
	})
	require.NoError(t, app.RunContext(context.Background(), []string{"cmd"}))
	require.True(t, called)
}

func TestAddPerformanceDiagnosticsAction_FailingSetup_ReportsAllReasons(t *testing.T) {
	missing := path.Join(t.TempDir(), "missing", "dir")
	called := false
	app := newTestApp(func(*cli.Context) error {
		called = true
		return nil
	})

	set := []string{"cmd", "--cpu-profile", path.Join(missing, "cpu.profile"), "--trace", path.Join(missing, "tracer.out")}
	err := app.RunContext(context.Background(), set)
	require.Error(t, err)
	require.False(t, called, "action must not run if diagnostics could not be set up")

	lines := strings.Split(err.Error(), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "could not create CPU profile"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "failed to create trace file"), lines[1])
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAddPerformanceDiagnosticsAction_FailingTracer_StillRunsNoAction(t *testing.T) {
	dir := t.TempDir()
	called := false
	app := newTestApp(func(*cli.Context) error {
		called = true
		return nil
	})

	set := []string{"cmd", "--cpu-profile", path.Join(dir, "cpu.profile"), "--trace", path.Join(dir, "missing", "tracer.out")}
	err := app.RunContext(context.Background(), set)
	require.ErrorContains(t, err, "failed to create trace file")
	require.NotContains(t, err.Error(), "CPU profile")
	require.False(t, called)
	require.FileExists(t, path.Join(dir, "cpu.profile"))
}

func newTestApp(action cli.ActionFunc) *cli.App {
	diagnosticsFlag := cli.IntFlag{Name: "diagnostics"}
	cpuProfileFlag := cli.StringFlag{Name: "cpu-profile"}
	traceFlag := cli.StringFlag{Name: "trace"}

	return &cli.App{
		Action: AddPerformanceDiagnosticsAction(action, &diagnosticsFlag, &cpuProfileFlag, &traceFlag),
		Flags:  []cli.Flag{&diagnosticsFlag, &cpuProfileFlag, &traceFlag},
	}
}

func TestStopCpuProfiler_ClosesProfileFile(t *testing.T) {
	f, err := startCpuProfiler(path.Join(t.TempDir(), "cpu.profile"))
	require.NoError(t, err)
	require.NoError(t, stopCpuProfiler(f))
	require.ErrorIs(t, f.Close(), os.ErrClosed)
}

func TestStartCpuProfiler_ProfilerAlreadyRunning_ReportsFailure(t *testing.T) {
	dir := t.TempDir()
	running, err := startCpuProfiler(path.Join(dir, "first.profile"))
	require.NoError(t, err)
	defer stopCpuProfiler(running)

	f, err := startCpuProfiler(path.Join(dir, "second.profile"))
	require.ErrorContains(t, err, "could not start CPU profile")
	require.Nil(t, f)
}

func TestStopTracer_ClosesTraceFile(t *testing.T) {
	f, err := startTracer(path.Join(t.TempDir(), "tracer.out"))
	require.NoError(t, err)
	require.NoError(t, stopTracer(f))
	require.ErrorIs(t, f.Close(), os.ErrClosed)
}

func TestStartTracer_TracerAlreadyRunning_ReportsFailure(t *testing.T) {
	dir := t.TempDir()
	running, err := startTracer(path.Join(dir, "first.out"))
	require.NoError(t, err)
	defer stopTracer(running)

	f, err := startTracer(path.Join(dir, "second.out"))
	require.ErrorContains(t, err, "failed to start trace")
	require.Nil(t, f)
}

func TestStartDiagnosticServer_LogsThroughContextLogger(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out).Level(zerolog.InfoLevel)
	startDiagnosticServer(logger.WithContext(context.Background()), 6062)
	require.Contains(t, out.String(), "Starting diagnostic server")

	out.Reset()
	quiet := zerolog.New(&out).Level(zerolog.ErrorLevel)
	startDiagnosticServer(quiet.WithContext(context.Background()), 6063)
	require.NotContains(t, out.String(), "Starting diagnostic server")
}
