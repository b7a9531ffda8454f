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
	"github.com/0xsoniclabs/attempt/common/diagnostics"
	"github.com/urfave/cli/v2"
)

var (
	fileFlag = cli.StringFlag{
		Name:    "file",
		Usage:   "the text file to count the words of",
		Value:   "sample.txt",
		EnvVars: []string{"WORDCOUNT_FILE"},
	}
	logLevelFlag = cli.StringFlag{
		Name:    "log-level",
		Usage:   "minimum level of log messages (trace, debug, info, warn, error)",
		Value:   "info",
		EnvVars: []string{"WORDCOUNT_LOG_LEVEL"},
	}
	diagnosticsFlag = cli.IntFlag{
		Name:  "diagnostic-port",
		Usage: "enable hosting of a realtime diagnostic server by providing a port",
		Value: 0,
	}
	cpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
		Value: "",
	}
	traceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for traces to, disabled if empty",
		Value: "",
	}
)

func addDiagnostics(action cli.ActionFunc) cli.ActionFunc {
	return diagnostics.AddPerformanceDiagnosticsAction(action, &diagnosticsFlag, &cpuProfileFlag, &traceFlag)
}
