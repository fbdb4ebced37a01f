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

// Package testhelper provides helpers to execute cobra commands in tests.
package testhelper

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func captureOutput(ctx context.Context, cmd *cobra.Command, in io.Reader, out io.Writer) {
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetContext(ctx)

	for _, subCmd := range cmd.Commands() {
		captureOutput(ctx, subCmd, in, out)
	}
}

// ExecuteCommand executes the given command and returns its output.
func ExecuteCommand(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	return ExecuteCommandWithInput(ctx, cmd, args, "")
}

// ExecuteCommandWithInput executes the given command with stdin set to input
// and returns its output.
func ExecuteCommandWithInput(ctx context.Context, cmd *cobra.Command, args []string, input string) (string, error) {
	out := new(bytes.Buffer)
	captureOutput(ctx, cmd, strings.NewReader(input), out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
