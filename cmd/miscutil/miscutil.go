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

// Package main is the implementation of miscutil, a CLI exposing the bounded
// tail collection, random data and first/last ordering utilities.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands/config"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands/randomgen"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands/sortlines"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands/tail"
	"github.com/talsmasoftware/miscutils/internal/cfg"
	"github.com/talsmasoftware/miscutils/internal/logger"
)

const (
	// galogShutdownTimeout is the period of time we should wait for galog to
	// shutdown.
	galogShutdownTimeout = time.Second
)

var (
	// version is the version of the binary, set at build time.
	version = "dev"
)

// newRootCommand generates the root command with all subcommands. The logger
// is initialized from the log flags before any subcommand runs.
func newRootCommand() *cobra.Command {
	core := cfg.Retrieve().Core
	logOpts := logger.Options{Ident: filepath.Base(os.Args[0])}

	root := &cobra.Command{
		Use:           "miscutil",
		Short:         "Miscellaneous utilities.",
		Long:          "Miscellaneous utilities: tail of files, random values and sorting with fixed first or last lines.",
		Version:       core.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(cmd.Context(), logOpts); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			galog.V(1).Debugf("Running %q with args %v", cmd.CommandPath(), args)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&logOpts.LogFile, "logfile", core.LogFile, "path to the log file")
	flags.BoolVar(&logOpts.LogToStderr, "logtostderr", false, "write logs to stderr")
	flags.IntVar(&logOpts.Level, "loglevel", core.LogLevel, "log level: "+galog.ValidLevels())
	flags.IntVar(&logOpts.Verbosity, "logverbosity", core.LogVerbosity, "log verbosity")

	root.AddCommand(tail.New())
	root.AddCommand(randomgen.New())
	root.AddCommand(sortlines.New())
	root.AddCommand(config.New())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Load(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// Any value coming from configuration files is overridden.
	cfg.Retrieve().Core.Version = version

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	galog.Shutdown(galogShutdownTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
