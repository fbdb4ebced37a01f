//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package logger wraps the galog configuration/initialization.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/talsmasoftware/miscutils/internal/utils/file"
)

// Options contains the loggers configuration/options.
type Options struct {
	// Ident is the application ident, used as the log file name when LogFile
	// points to a directory.
	Ident string
	// LogFile is the path of the log file.
	LogFile string
	// LogToStderr flags if stderr loggers must be enabled.
	LogToStderr bool
	// Stderr overrides the stderr logger's writer, defaults to os.Stderr.
	Stderr io.Writer
	// Level is the log level.
	Level int
	// Verbosity is the log verbosity level.
	Verbosity int
}

const (
	// LocalLoggerIdent is the ident used for local loggers.
	LocalLoggerIdent = "miscutil"
)

// Init initializes the logger.
func Init(ctx context.Context, opts Options) error {
	level, err := galog.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	galog.SetMinVerbosity(opts.Verbosity)

	var enabledLoggers []galog.Backend
	if logFile := resolveLogFile(opts); logFile != "" {
		enabledLoggers = append(enabledLoggers, galog.NewFileBackend(logFile))
	}

	if opts.LogToStderr {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		enabledLoggers = append(enabledLoggers, galog.NewStderrBackend(w))
	}

	for _, logger := range enabledLoggers {
		galog.RegisterBackend(ctx, logger)
	}

	galog.SetLevel(level)
	return nil
}

// resolveLogFile returns the file the file backend should write to, or an
// empty string if file logging is disabled or its directory is missing.
func resolveLogFile(opts Options) string {
	if opts.LogFile == "" {
		return ""
	}

	if file.Exists(opts.LogFile, file.TypeDir) {
		ident := opts.Ident
		if ident == "" {
			ident = LocalLoggerIdent
		}
		return filepath.Join(opts.LogFile, ident+".log")
	}

	if !file.Exists(filepath.Dir(opts.LogFile), file.TypeDir) {
		return ""
	}
	return opts.LogFile
}
