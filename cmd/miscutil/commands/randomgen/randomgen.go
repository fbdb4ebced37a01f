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

// Package randomgen implements the random command, generating random strings
// and choosing or shuffling given values.
package randomgen

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands"
	"github.com/talsmasoftware/miscutils/internal/cfg"
	"github.com/talsmasoftware/miscutils/internal/random"
)

// options holds the flag values shared by the random subcommands.
type options struct {
	seed      uint64
	count     int
	minLength int
	maxLength int
	charset   string
	chars     string
	except    []string
}

// New returns a new cobra command for random. Flag defaults come from the
// [Random] configuration section.
func New() *cobra.Command {
	conf := cfg.Retrieve().Random
	opts := &options{}

	rnd := &cobra.Command{
		Use:   "random",
		Short: "Generate random values",
		Long:  "Generate random strings, pick random values or shuffle characters.",
		Example: `miscutil random string --min 8 --max 12 --charset hexadecimals
miscutil random pick --except red red green blue`,
	}
	rnd.PersistentFlags().Uint64Var(&opts.seed, "seed", conf.Seed, "generator seed, 0 seeds from the current time")
	rnd.PersistentFlags().IntVar(&opts.count, "count", 1, "number of values to generate")

	str := &cobra.Command{
		Use:   "string",
		Short: "Generate random strings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runString(cmd)
		},
	}
	str.Flags().IntVar(&opts.minLength, "min", conf.MinLength, "minimum string length")
	str.Flags().IntVar(&opts.maxLength, "max", conf.MaxLength, "maximum string length")
	str.Flags().StringVar(&opts.charset, "charset", conf.Charset, "name of the character set, e.g. numbers_and_letters or hexadecimals")
	str.Flags().StringVar(&opts.chars, "chars", "", "characters to use, overrides --charset")
	commands.AddOutputFlags(str)

	pick := &cobra.Command{
		Use:   "pick <values...>",
		Short: "Pick random values from the given ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runPick(cmd, args)
		},
	}
	pick.Flags().StringSliceVar(&opts.except, "except", nil, "values never to pick")
	commands.AddOutputFlags(pick)

	shuffle := &cobra.Command{
		Use:   "shuffle <chars>",
		Short: "Shuffle the characters of the given string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runShuffle(cmd, args[0])
		},
	}
	commands.AddOutputFlags(shuffle)

	rnd.AddCommand(str, pick, shuffle)
	return rnd
}

// generate calls next opts.count times with a generator seeded from opts.
func (o *options) generate(next func(g *random.Generator) (string, error)) ([]string, error) {
	if o.count < 1 {
		return nil, fmt.Errorf("count must be a positive number, got %d", o.count)
	}

	g := random.NewSeeded(o.seed)
	res := make([]string, 0, o.count)
	for range o.count {
		v, err := next(g)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (o *options) runString(cmd *cobra.Command) error {
	chars := o.chars
	if chars == "" {
		var ok bool
		if chars, ok = random.Charset(o.charset); !ok {
			return fmt.Errorf("unknown charset %q", o.charset)
		}
	}

	values, err := o.generate(func(g *random.Generator) (string, error) {
		return g.Text(o.minLength, o.maxLength, chars)
	})
	if err != nil {
		return err
	}
	return commands.Output(cmd, values)
}

func (o *options) runPick(cmd *cobra.Command, choices []string) error {
	values, err := o.generate(func(g *random.Generator) (string, error) {
		// ValueFrom only fails without choices, which cobra already rejects.
		next := func() string {
			v, _ := random.ValueFrom(g, choices...)
			return v
		}
		v, err := random.ValueExcept(next, o.except...)
		if err != nil {
			return "", fmt.Errorf("failed to pick a value from %v except %v: %w", choices, o.except, err)
		}
		return v, nil
	})
	if err != nil {
		return err
	}
	return commands.Output(cmd, values)
}

func (o *options) runShuffle(cmd *cobra.Command, chars string) error {
	values, err := o.generate(func(g *random.Generator) (string, error) {
		return g.ShuffleString(chars), nil
	})
	if err != nil {
		return err
	}
	return commands.Output(cmd, values)
}
