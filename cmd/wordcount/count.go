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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/0xsoniclabs/attempt/try"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var errNotText = errors.New("content is not valid UTF-8 text")

// loggedError marks a failure that has already been reported through the
// logger and must not be printed again.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string {
	return e.err.Error()
}

func (e *loggedError) Unwrap() error {
	return e.err
}

// report prints err to out unless it has been logged already.
func report(out io.Writer, err error) {
	var logged *loggedError
	if err == nil || errors.As(err, &logged) {
		return
	}
	fmt.Fprintln(out, err)
}

// withLogger installs the logger configured by the flags into the context of
// the given action and everything it wraps.
func withLogger(action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger, err := newLogger(c.App.ErrWriter, c.String(logLevelFlag.Name))
		if err != nil {
			return err
		}
		c.Context = logger.WithContext(c.Context)
		return action(c)
	}
}

// count is the action of the tool: it reads the configured file and prints its
// number of words. Failures of either step are logged and returned.
func count(c *cli.Context) error {
	ctx := c.Context
	path := c.String(fileFlag.Name)

	content, err := try.CallAsync(ctx, func(ctx context.Context) (string, error) {
		return readFile(ctx, path)
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("reading the file was cancelled")
		return &loggedError{err: err}
	}
	if content.Failed() {
		log.Ctx(ctx).Error().Str("file", path).Str("reason", content.ErrorMessage()).
			Msg("an error occurred while attempting to read the file")
		return &loggedError{err: content.Cause()}
	}
	log.Ctx(ctx).Debug().Str("file", path).Msg("file read successfully")

	words := try.Call(func() (int, error) {
		return countWords(content.Value())
	})
	if words.Failed() {
		log.Ctx(ctx).Error().Str("file", path).Str("reason", words.ErrorMessage()).
			Msg("an error occurred while attempting to count words")
		return &loggedError{err: words.Cause()}
	}

	fmt.Fprintf(c.App.Writer, "%s contains %d words\n", path, words.Value())
	return nil
}

// readFile returns the content of the given file unless ctx is done.
func readFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// countWords counts the whitespace-separated words of the given text.
func countWords(content string) (int, error) {
	if !utf8.ValidString(content) {
		return 0, errNotText
	}
	return len(strings.Fields(content)), nil
}

func newLogger(out io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if out == nil {
		out = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
