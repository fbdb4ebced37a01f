//  Copyright 2023 Google Inc. All Rights Reserved.
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

// Package cfg is package responsible to loading and accessing the miscutil
// configuration.
package cfg

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"text/template"

	"github.com/GoogleCloudPlatform/galog"
	iniutil "github.com/talsmasoftware/miscutils/internal/utils/ini"
	"gopkg.in/ini.v1"
)

var (
	// instance is the single instance of configuration sections, once loaded this
	// package should always return it.
	instance *Sections

	// dataSources is a pointer to a data source loading/defining function, unit
	// tests will want to change this pointer to whatever makes sense to its
	// implementation.
	dataSources = defaultDataSources
	// defaultConfigValues holds the defaults values for template.
	defaultConfigValues = map[string]string{
		"logFile": "",
		"charset": defaultCharset,
	}

	// panicFc is a reference to panic(), it's overridden in unit tests.
	panicFc = panicWrapper

	// cfgMu protects the initialization and retrieval of config instance.
	cfgMu sync.RWMutex
)

const (
	// defaultCharset is the character set used for random strings unless
	// configured otherwise.
	defaultCharset = "numbers_and_letters"

	// defaultConfigTemplate is the default configuration template for the
	// configuration sections.
	defaultConfigTemplate = `
[Core]
log_level = 3
log_verbosity = 0
log_file = {{.logFile}}

[Tail]
lines = 10
partitions = 1

[Random]
charset = {{.charset}}
min_length = 16
max_length = 16
seed = 0

[Sort]
ignore_case = false
`
)

// Sections encapsulates all the configuration sections.
type Sections struct {
	// Core defines the configuration entries shared by all commands.
	Core *Core `ini:"Core,omitempty"`

	// Tail defines the defaults of the tail command.
	Tail *Tail `ini:"Tail,omitempty"`

	// Random defines the defaults of the random command.
	Random *Random `ini:"Random,omitempty"`

	// Sort defines the defaults of the sort command.
	Sort *Sort `ini:"Sort,omitempty"`
}

// Core contains the configuration entries not tied to a specific command.
type Core struct {
	// LogLevel defines the log level. The CLI's flag takes precedence over this
	// configuration.
	LogLevel int `ini:"log_level,omitempty"`
	// LogVerbosity defines the log verbosity. The CLI's flag takes precedence
	// over this configuration.
	LogVerbosity int `ini:"log_verbosity,omitempty"`
	// LogFile defines the log file, empty disables file logging. Logging to file
	// is skipped if its directory doesn't exist.
	LogFile string `ini:"log_file,omitempty"`
	// Version defines the version of the running binary. Value is set
	// dynamically in main, any value provided via config file is overridden.
	Version string `ini:"-"`
}

// Tail contains the configurations of Tail section.
type Tail struct {
	// Lines is the number of trailing lines to print.
	Lines int `ini:"lines,omitempty"`
	// Partitions is the number of partitions a file is split into and collected
	// concurrently. 1 collects sequentially.
	Partitions int `ini:"partitions,omitempty"`
}

// Random contains the configurations of Random section.
type Random struct {
	// Charset is the name of the character set random strings are generated
	// from, e.g. numbers_and_letters or hexadecimals.
	Charset string `ini:"charset,omitempty"`
	// MinLength is the minimum (inclusive) length of random strings.
	MinLength int `ini:"min_length,omitempty"`
	// MaxLength is the maximum (inclusive) length of random strings.
	MaxLength int `ini:"max_length,omitempty"`
	// Seed seeds the generator, 0 means time based.
	Seed uint64 `ini:"seed,omitempty"`
}

// Sort contains the configurations of Sort section.
type Sort struct {
	IgnoreCase bool `ini:"ignore_case,omitempty"`
}

// panicWrapper is a wrapper over panic() to make it testable.
func panicWrapper(args ...any) {
	panic(args)
}

func applyTemplate(templateStr string, data map[string]string, buffer io.Writer) error {
	t, err := template.New("").Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	err = t.Execute(buffer, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

func defaultDataSources(extraDefaults []byte) []any {
	var res []any

	if len(extraDefaults) > 0 {
		res = append(res, extraDefaults)
	}

	return append(res, []any{
		defaultConfigFile,
		defaultConfigFile + ".distro",
		defaultConfigFile + ".template",
	}...)
}

// Load loads default configuration and the configuration from default config
// files. Sources that don't exist are skipped.
func Load(extraDefaults []byte) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	opts := ini.LoadOptions{
		Loose:       true,
		Insensitive: true,
	}

	var buffer bytes.Buffer
	err := applyTemplate(defaultConfigTemplate, defaultConfigValues, &buffer)
	if err != nil {
		return fmt.Errorf("unable to apply %v to config template: %w", defaultConfigValues, err)
	}

	sources := dataSources(extraDefaults)
	galog.V(3).Debugf("Loading configuration from sources: %v", sources)
	cfg, err := ini.LoadSources(opts, buffer.Bytes(), sources...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %+w", err)
	}

	sections := new(Sections)
	if err := cfg.MapTo(sections); err != nil {
		return fmt.Errorf("failed to map configuration to object: %w", err)
	}

	instance = sections
	return nil
}

// Retrieve returns the configuration's instance previously loaded with Load().
func Retrieve() *Sections {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if instance == nil {
		panicFc("cfg package was not initialized, Load() should be called in the early initialization code path")
	}
	return instance
}

// ToString returns the configuration's instance previously loaded with Load()
// rendered in the ini format.
func ToString() (string, error) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	if instance == nil {
		return "", fmt.Errorf("configuration was not loaded")
	}

	configString, err := iniutil.Marshal(instance)
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	return configString, nil
}
