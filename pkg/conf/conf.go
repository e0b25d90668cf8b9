// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvPrefix is prepended to upper cased flag names to build environment variable names.
const EnvPrefix = "KMBENCH"

var (
	app = kingpin.New("kmbench", "No help available")

	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"info",
	)
	isEnvParsed = false
)

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured logLevel from input option or env variable.
// If it cannot parse the log level, it returns default value.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// ParseFlags parses both the command line flags of the process and
// environment variables.
func ParseFlags() error {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses given arguments and environment variables.
func ParseArgs(args []string) error {
	resetLists()
	if _, err := app.Parse(args); err != nil {
		return errors.Wrap(err, "could not parse command line flags")
	}
	isEnvParsed = true
	return nil
}

// ParseEnv parses only the environment.
func ParseEnv() error {
	resetLists()
	if _, err := app.Parse([]string{}); err != nil {
		return errors.Wrap(err, "could not parse environment flags")
	}
	isEnvParsed = true
	return nil
}

// resetLists drops values collected by a previous parse, kingpin appends to cumulative values.
func resetLists() {
	for _, flag := range definedFlags {
		if slice, ok := flag.(*SliceFlag); ok {
			*slice.value = nil
		}
	}
}

// FlagDefinition describes a registered flag with its current value.
type FlagDefinition struct {
	Name, Value, Default, Help string
}

// GetConfiguration returns current, default, keys and description for every flag
// in registration order.
func GetConfiguration() []FlagDefinition {
	definitions := make([]FlagDefinition, 0, len(flagOrder))
	for _, name := range flagOrder {
		flag := definedFlags[name]
		definitions = append(definitions, FlagDefinition{
			Name:    name,
			Value:   flag.stringValue(),
			Default: flag.defaultString(),
			Help:    flag.help(),
		})
	}
	return definitions
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flags := map[string]string{}
	for _, definition := range GetConfiguration() {
		flags[definition.Name] = definition.Value
	}
	return flags
}

// DumpConfig dumps environment based configuration with current values of flags.
// Includes "allexport" directives for bash.
func DumpConfig() string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export all values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, definition := range GetConfiguration() {
		fmt.Fprintf(buffer, "\n# %s\n", definition.Help)
		if definition.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", definition.Default)
		}
		fmt.Fprintf(buffer, "%s=%s\n", envName(definition.Name), definition.Value)
	}

	buffer.WriteString("set +o allexport\n")
	return buffer.String()
}
