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

// Package ini provides wrapper util functions to render and write INI files.
package ini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/talsmasoftware/miscutils/internal/utils/file"
	"gopkg.in/ini.v1"
)

var (
	// ErrInvalidData is returned when the data pointer is nil.
	ErrInvalidData = errors.New("invalid data pointer, ptr is nil")
)

// ReflectFrom reflects ptr data into an ini.File.
func ReflectFrom(ptr any) (*ini.File, error) {
	if ptr == nil {
		return nil, ErrInvalidData
	}

	config := ini.Empty()
	if err := ini.ReflectFrom(config, ptr); err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	return config, nil
}

// Marshal renders ptr data in the ini file format, without trailing
// whitespace.
func Marshal(ptr any) (string, error) {
	config, err := ReflectFrom(ptr)
	if err != nil {
		return "", err
	}

	buffer := new(bytes.Buffer)
	if _, err := config.WriteTo(buffer); err != nil {
		return "", fmt.Errorf("failed to write configuration to buffer: %w", err)
	}
	return strings.TrimSpace(buffer.String()), nil
}

// WriteIniFile writes ptr data into filePath marshalled in the ini file
// format. The file is replaced atomically.
func WriteIniFile(ctx context.Context, filePath string, ptr any) error {
	data, err := Marshal(ptr)
	if err != nil {
		return err
	}

	if err := file.SaferWriteFile(ctx, []byte(data+"\n"), filePath, file.Options{Perm: 0644}); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}
