// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountWords_CountsWhitespaceSeparatedWords(t *testing.T) {
	tests := map[string]int{
		"":                         0,
		"   ":                      0,
		"hello":                    1,
		"hello world":              2,
		"one\ntwo\r\nthree\tfour ": 4,
	}
	for content, want := range tests {
		got, err := countWords(content)
		require.NoError(t, err)
		require.Equal(t, want, got, "content %q", content)
	}
}

func TestCountWords_RejectsBinaryContent(t *testing.T) {
	_, err := countWords(string([]byte{0xff, 0xfe, 0x00}))
	require.ErrorIs(t, err, errNotText)
}

func TestReadFile_CancelledContext_DoesNotRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := readFile(ctx, "does-not-matter")
	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_ExistingFile_PrintsWordCount(t *testing.T) {
	path := writeFile(t, "the quick brown fox")

	out, err := runApp(t, context.Background(), "--file", path)
	require.NoError(t, err)
	require.Equal(t, path+" contains 4 words\n", out)
}

func TestApp_MissingFile_ReturnsReadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	out, err := runApp(t, context.Background(), "--file", path)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Empty(t, out)
}

func TestApp_BinaryFile_ReturnsCountFailure(t *testing.T) {
	path := writeFile(t, string([]byte{0xff, 0xfe}))

	_, err := runApp(t, context.Background(), "--file", path)
	require.ErrorIs(t, err, errNotText)
}

func TestApp_CancelledContext_ReturnsCancellation(t *testing.T) {
	path := writeFile(t, "some words")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := runApp(t, ctx, "--file", path)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out)
}

func TestApp_InvalidLogLevel_IsRejected(t *testing.T) {
	path := writeFile(t, "some words")

	_, err := runApp(t, context.Background(), "--file", path, "--log-level", "loud")
	require.ErrorContains(t, err, "invalid log level")
}

func TestApp_FileFromEnvironment_IsUsed(t *testing.T) {
	path := writeFile(t, "a b c")
	t.Setenv("WORDCOUNT_FILE", path)

	out, err := runApp(t, context.Background())
	require.NoError(t, err)
	require.Equal(t, path+" contains 3 words\n", out)
}

func runApp(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.RunContext(ctx, append([]string{"wordcount"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestApp_LoggedFailure_IsNotPrintedAgain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	var logs bytes.Buffer
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = &logs
	err := app.RunContext(context.Background(), []string{"wordcount", "--file", path})
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Contains(t, logs.String(), "an error occurred while attempting to read the file")

	var printed bytes.Buffer
	report(&printed, err)
	require.Empty(t, printed.String())
}

func TestReport_UnloggedFailure_IsPrinted(t *testing.T) {
	var printed bytes.Buffer
	report(&printed, errors.New("flag provided but not defined: -x"))
	require.Equal(t, "flag provided but not defined: -x\n", printed.String())

	printed.Reset()
	report(&printed, nil)
	require.Empty(t, printed.String())
}

func TestApp_LogLevel_AppliesToDiagnostics(t *testing.T) {
	path := writeFile(t, "some words")

	var logs bytes.Buffer
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = &logs
	err := app.RunContext(context.Background(), []string{
		"wordcount", "--file", path, "--log-level", "error", "--diagnostic-port", "6064",
	})
	require.NoError(t, err)
	require.NotContains(t, logs.String(), "Starting diagnostic server")
}
