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

// Package tail implements the tail command, printing the last lines of a file
// or of stdin.
package tail

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands"
	"github.com/talsmasoftware/miscutils/internal/boundedlist"
	"github.com/talsmasoftware/miscutils/internal/cfg"
	"github.com/talsmasoftware/miscutils/internal/streams"
	"github.com/talsmasoftware/miscutils/internal/utils/file"
)

// options holds the flag values of one tail command instance.
type options struct {
	lines      int
	partitions int
	follow     bool
}

// New returns a new cobra command for tail. Flag defaults come from the
// [Tail] configuration section.
func New() *cobra.Command {
	conf := cfg.Retrieve().Tail
	opts := &options{}

	tail := &cobra.Command{
		Use:   "tail [file]",
		Short: "Print the last lines of a file",
		Long: "Print the last lines of a file, or of stdin if no file is given. " +
			"With --partitions the input is split and the partitions are collected concurrently.",
		Example: "miscutil tail -n 20 --format json /var/log/syslog",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	tail.Flags().IntVarP(&opts.lines, "lines", "n", conf.Lines, "number of trailing lines to print")
	tail.Flags().IntVar(&opts.partitions, "partitions", conf.Partitions, "number of partitions collected concurrently")
	tail.Flags().BoolVarP(&opts.follow, "follow", "f", false, "keep printing lines appended to the file until interrupted")
	commands.AddOutputFlags(tail)

	return tail
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 0 {
		if o.follow {
			return fmt.Errorf("--follow requires a file argument")
		}
		lines, err := o.lastLines(ctx, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return commands.Output(cmd, lines)
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	// Only read up to the current size, follow picks up from there.
	offset := stat.Size()
	lines, err := o.lastLines(ctx, io.LimitReader(f, offset))
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !o.follow {
		return commands.Output(cmd, lines)
	}
	return o.followFile(cmd, path, offset, lines)
}

// lastLines collects the last o.lines lines of r, sequentially or split in
// o.partitions partitions.
func (o *options) lastLines(ctx context.Context, r io.Reader) ([]string, error) {
	if o.partitions <= 1 {
		return file.ReadLastNLines(r, o.lines)
	}

	last, err := streams.Last[string](o.lines)
	if err != nil {
		return nil, err
	}

	var readErr error
	var all []string
	for line := range file.Lines(r, &readErr) {
		all = append(all, line)
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read lines: %w", readErr)
	}

	parts := streams.Partition(all, o.partitions)
	galog.V(2).Debugf("Collecting %d lines in %d partitions", len(all), len(parts))
	return streams.CollectPartitioned(ctx, parts, last)
}

// followFile prints lines as they are appended to path until the context is
// done. The last o.lines lines seen are written to the --output file, if any,
// when following stops.
func (o *options) followFile(cmd *cobra.Command, path string, offset int64, lines []string) error {
	recent, err := boundedlist.New(o.lines, lines...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	err = file.Follow(cmd.Context(), path, offset, func(line string) {
		recent.Add(line)
		fmt.Fprintln(out, line)
	})
	if err != nil {
		return err
	}

	galog.Debugf("Stopped following %q", path)
	if commands.OutputFile(cmd) == "" {
		return nil
	}
	return commands.Output(cmd, recent.All())
}
