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

package tail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/cmd/miscutil/commands/testhelper"
	"github.com/talsmasoftware/miscutils/internal/cfg"
)

func newCommand(t *testing.T) *cobra.Command {
	t.Helper()
	if err := cfg.Load(nil); err != nil {
		t.Fatalf("cfg.Load(nil) failed unexpectedly: %v", err)
	}
	return New()
}

// numberedLines returns the lines "line from" up to and including "line to",
// each terminated by a new line.
func numberedLines(from, to int) string {
	var sb strings.Builder
	for i := from; i <= to; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return sb.String()
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("os.WriteFile(%s) failed: %v", path, err)
	}
	return path
}

func TestNew(t *testing.T) {
	cmd := newCommand(t)

	if cmd.Name() != "tail" {
		t.Errorf("New().Name() = %q, want %q", cmd.Name(), "tail")
	}

	for _, flag := range []string{"lines", "partitions", "follow", "format", "output"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("New() did not register flag %q", flag)
		}
	}

	if got := cmd.Flags().Lookup("lines").DefValue; got != "10" {
		t.Errorf("New() --lines default = %s, want 10", got)
	}
}

func TestTail(t *testing.T) {
	path := writeFile(t, numberedLines(1, 15))

	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "stdin-default-lines",
			input: numberedLines(1, 15),
			want:  numberedLines(6, 15),
		},
		{
			name:  "stdin-fewer-lines",
			args:  []string{"-n", "5"},
			input: numberedLines(1, 3),
			want:  numberedLines(1, 3),
		},
		{
			name: "file",
			args: []string{"-n", "3", path},
			want: numberedLines(13, 15),
		},
		{
			name: "file-partitioned",
			args: []string{"-n", "4", "--partitions", "3", path},
			want: numberedLines(12, 15),
		},
		{
			name: "partitioned-more-partitions-than-lines",
			args: []string{"-n", "2", "--partitions", "40", path},
			want: numberedLines(14, 15),
		},
		{
			name: "json",
			args: []string{"-n", "2", "--format", "json", path},
			want: "[\n  \"line 14\",\n  \"line 15\"\n]\n",
		},
		{
			name:  "empty-input",
			input: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newCommand(t)
			got, err := testhelper.ExecuteCommandWithInput(context.Background(), cmd, tc.args, tc.input)
			if err != nil {
				t.Fatalf("ExecuteCommand(tail %v) failed unexpectedly: %v", tc.args, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ExecuteCommand(tail %v) returned diff (-want +got):\n%s", tc.args, diff)
			}
		})
	}
}

func TestTailErrors(t *testing.T) {
	path := writeFile(t, numberedLines(1, 3))

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "zero-lines",
			args: []string{"-n", "0", path},
		},
		{
			name: "negative-lines-partitioned",
			args: []string{"--lines=-1", "--partitions", "2", path},
		},
		{
			name: "missing-file",
			args: []string{filepath.Join(t.TempDir(), "missing.txt")},
		},
		{
			name: "follow-stdin",
			args: []string{"--follow"},
		},
		{
			name: "too-many-args",
			args: []string{path, path},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newCommand(t)
			if _, err := testhelper.ExecuteCommand(context.Background(), cmd, tc.args); err == nil {
				t.Errorf("ExecuteCommand(tail %v) succeeded, want error", tc.args)
			}
		})
	}
}

func TestTailFollowStopped(t *testing.T) {
	path := writeFile(t, numberedLines(1, 5))
	outputFile := filepath.Join(t.TempDir(), "recent.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newCommand(t)
	args := []string{"-n", "3", "--follow", "-o", outputFile, path}
	got, err := testhelper.ExecuteCommand(ctx, cmd, args)
	if err != nil {
		t.Fatalf("ExecuteCommand(tail %v) failed unexpectedly: %v", args, err)
	}
	if diff := cmp.Diff(numberedLines(3, 5), got); diff != "" {
		t.Errorf("ExecuteCommand(tail %v) returned diff (-want +got):\n%s", args, diff)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("os.ReadFile(%s) failed: %v", outputFile, err)
	}
	if diff := cmp.Diff(numberedLines(3, 5), string(data)); diff != "" {
		t.Errorf("os.ReadFile(%s) returned diff (-want +got):\n%s", outputFile, diff)
	}
}
