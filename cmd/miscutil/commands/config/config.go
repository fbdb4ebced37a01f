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

// Package config implements the config command, printing or saving the
// effective configuration.
package config

import (
	"fmt"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/spf13/cobra"
	"github.com/talsmasoftware/miscutils/internal/cfg"
	"github.com/talsmasoftware/miscutils/internal/utils/ini"
)

// New returns a new cobra command for config.
func New() *cobra.Command {
	var writeTo string

	config := &cobra.Command{
		Use:     "config",
		Short:   "Print the effective configuration",
		Long:    "Print the configuration resulting from the defaults and the configuration files, or save it with --write.",
		Example: "miscutil config --write /etc/default/miscutil.cfg",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if writeTo != "" {
				galog.Infof("Writing configuration to %q", writeTo)
				if err := ini.WriteIniFile(cmd.Context(), writeTo, cfg.Retrieve()); err != nil {
					return fmt.Errorf("failed to write configuration: %w", err)
				}
				return nil
			}

			content, err := cfg.ToString()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}
	config.Flags().StringVar(&writeTo, "write", "", "write the configuration to this file instead of printing it")

	return config
}
