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

// Package sortlines implements the sort command, sorting lines with selected
// values kept first or last.
package sortlines

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands"
	"github.com/talsmasoftware/miscutils/internal/cfg"
	"github.com/talsmasoftware/miscutils/internal/firstlast"
	"github.com/talsmasoftware/miscutils/internal/utils/file"
	"golang.org/x/exp/slices"
)

type options struct {
	first      []string
	last       []string
	ignoreCase bool
}

// New returns a new cobra command for sort.
func New() *cobra.Command {
	opts := &options{}

	sort := &cobra.Command{
		Use:   "sort [file]",
		Short: "Sort lines",
		Long: "Sort the lines of a file, or of stdin if no file is given. Lines given with --first " +
			"are sorted before all others and lines given with --last after all others, in the order given.",
		Example: `miscutil sort --first Monday --last Other days.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	sort.Flags().StringSliceVar(&opts.first, "first", nil, "lines to sort first, in order")
	sort.Flags().StringSliceVar(&opts.last, "last", nil, "lines to sort last, in order")
	sort.Flags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", cfg.Retrieve().Sort.IgnoreCase, "compare lines case-insensitive")
	commands.AddOutputFlags(sort)

	return sort
}

// comparator returns the order of the lines: --first values, then all other
// lines through the natural or case-insensitive order, then --last values.
func (o *options) comparator() (firstlast.Comparator[string], error) {
	natural := strings.Compare
	if o.ignoreCase {
		natural = compareFold
	}

	order, err := firstlast.First(natural, o.first...)
	if err != nil {
		return nil, err
	}
	return firstlast.Last(order, o.last...)
}

// compareFold compares case-insensitive, falling back to the case-sensitive
// order for lines differing only in case.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open file %q: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	lines, err := readLines(in)
	if err != nil {
		return err
	}

	order, err := o.comparator()
	if err != nil {
		return err
	}
	slices.SortStableFunc(lines, order)

	return commands.Output(cmd, lines)
}

func readLines(r io.Reader) ([]string, error) {
	var readErr error
	var lines []string
	for line := range file.Lines(r, &readErr) {
		lines = append(lines, line)
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read lines: %w", readErr)
	}
	return lines, nil
}
