//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package file implements file related utilities: existence checks, atomic
// writes and line oriented reading and following of text files.
package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/fsnotify/fsnotify"
	"github.com/talsmasoftware/miscutils/internal/streams"
)

// Type is the type of file.
type Type int

// Options contain options for file modification operations behavior.
type Options struct {
	// Perm is the file permissions
	Perm fs.FileMode
}

// maxLineSize is the longest line Lines accepts.
const maxLineSize = 1024 * 1024

const (
	// TypeDir is the type of directory.
	TypeDir Type = iota
	// TypeFile is the type of file.
	TypeFile
)

// Exists returns true if the file exists and matches the given type.
func Exists(fpath string, ftype Type) bool {
	stat, err := os.Stat(fpath)
	if err != nil {
		return false
	}

	if ftype == TypeDir && stat.IsDir() {
		return true
	}

	if ftype == TypeFile && !stat.IsDir() {
		return true
	}

	return false
}

// SaferWriteFile writes to a temporary file and then replaces the expected
// output file.
// This prevents other processes from reading partial content while the writer
// is still writing.
func SaferWriteFile(ctx context.Context, content []byte, outputFile string, opts Options) error {
	dir := filepath.Dir(outputFile)
	name := filepath.Base(outputFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create required directories %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, name+"*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file under %q: %w", dir, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := WriteFile(ctx, content, tmp.Name(), opts); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("unable to write to a temporary file %q: %w", tmp.Name(), err)
	}

	return os.Rename(tmp.Name(), outputFile)
}

// WriteFile creates parent directories if required and writes content to the
// output file. Wraps OS errors.
func WriteFile(ctx context.Context, content []byte, outputFile string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("unable to create required directories for %q: %w", outputFile, err)
	}
	if err := os.WriteFile(outputFile, content, opts.Perm); err != nil {
		return fmt.Errorf("unable to write to file %q: %w", outputFile, err)
	}
	// os.WriteFile only applies Perm to new files.
	if err := os.Chmod(outputFile, opts.Perm); err != nil {
		return fmt.Errorf("unable to set permissions on %q: %w", outputFile, err)
	}
	return nil
}

// Lines returns a sequence over the lines of r without their line endings. The
// sequence stops at the first read error, which is reported through errp when
// it's not nil.
func Lines(r io.Reader, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		for scanner.Scan() {
			if !yield(strings.TrimSuffix(scanner.Text(), "\r")) {
				return
			}
		}
		if err := scanner.Err(); err != nil && errp != nil {
			*errp = err
		}
	}
}

// ReadLastNLines reads the last n lines of r.
func ReadLastNLines(r io.Reader, n int) ([]string, error) {
	last, err := streams.Last[string](n)
	if err != nil {
		return nil, err
	}

	var readErr error
	lines := streams.Collect(Lines(r, &readErr), last)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read lines: %w", readErr)
	}
	return lines, nil
}

// ReadLastNLinesFile reads the last n lines of the file at path.
func ReadLastNLinesFile(path string, n int) ([]string, error) {
	galog.Debugf("Reading last %d lines of file %q", n, path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLastNLines(f, n)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return lines, nil
}

// Follow watches the file at path and calls fn for every complete line
// appended after offset. It blocks until ctx is done or the watcher fails. A
// file truncated below the current offset is read again from its start.
func Follow(ctx context.Context, path string, offset int64, fn func(line string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch file %q: %w", path, err)
	}
	galog.V(2).Debugf("Following file %q from offset %d", path, offset)

	var partial string
	readNew := func() error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file %q: %w", path, err)
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat file %q: %w", path, err)
		}
		if stat.Size() < offset {
			galog.Debugf("File %q truncated, reading from the start", path)
			offset, partial = 0, ""
		}
		if stat.Size() == offset {
			return nil
		}

		buf := make([]byte, stat.Size()-offset)
		n, err := f.ReadAt(buf, offset)
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read file %q: %w", path, err)
		}
		offset += int64(n)

		data := partial + string(buf[:n])
		lines := strings.Split(data, "\n")
		// The last element is an incomplete line (or empty) and is kept until the
		// next write completes it.
		partial = lines[len(lines)-1]
		for _, line := range lines[:len(lines)-1] {
			fn(strings.TrimSuffix(line, "\r"))
		}
		return nil
	}

	// Catch up with anything written between the initial read and the watch.
	if err := readNew(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				return fmt.Errorf("file %q was removed or renamed", path)
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := readNew(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}
