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

// Package commands provides common helper methods for all commands implemented
// by CLI.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/internal/utils/file"
	"gopkg.in/yaml.v3"
)

const (
	// FormatText renders one value per line.
	FormatText = "text"
	// FormatJSON renders values as a JSON array.
	FormatJSON = "json"
	// FormatYAML renders values as a YAML sequence.
	FormatYAML = "yaml"

	formatFlag = "format"
	outputFlag = "output"
)

// AddOutputFlags registers the --format and --output flags consumed by Output.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String(formatFlag, FormatText, fmt.Sprintf("output format: %s, %s or %s", FormatText, FormatJSON, FormatYAML))
	cmd.Flags().StringP(outputFlag, "o", "", "write the result to this file instead of stdout")
}

// Render renders values in the given format.
func Render(format string, values []string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		var buf bytes.Buffer
		for _, v := range values {
			buf.WriteString(v)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if values == nil {
			values = []string{}
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		if values == nil {
			values = []string{}
		}
		data, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// OutputFile returns the value of the --output flag, if registered.
func OutputFile(cmd *cobra.Command) string {
	f := cmd.Flags().Lookup(outputFlag)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// Output renders values with the command's --format flag and writes them to
// the --output file, or to the command's output stream if not set.
func Output(cmd *cobra.Command, values []string) error {
	format := FormatText
	if f := cmd.Flags().Lookup(formatFlag); f != nil {
		format = f.Value.String()
	}

	data, err := Render(format, values)
	if err != nil {
		return err
	}

	if outputFile := OutputFile(cmd); outputFile != "" {
		galog.Debugf("Writing %d values to %q", len(values), outputFile)
		if err := file.SaferWriteFile(cmd.Context(), data, outputFile, file.Options{Perm: 0644}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
