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
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// flagType is an internal interface for all flags.
type flagType interface {
	envName() string
	clear()
	help() string
	stringValue() string
	defaultString() string
}

// definedFlags stores all the defined flags. It helps to find
// duplicates when defining flag with the same name.
var (
	definedFlags = map[string]flagType{}
	flagOrder    []string
)

func envName(flagName string) string {
	return fmt.Sprintf("%s_%s", EnvPrefix, strings.ToUpper(flagName))
}

// cliAndEnvFlag represents option's definition from CLI and Environment variable.
type cliAndEnvFlag struct {
	*kingpin.FlagClause
	name        string
	description string
}

func newCliAndEnvFlag(flagName string, description string, defaultValues ...string) *cliAndEnvFlag {
	if definedFlags[flagName] != nil {
		panic("This flag was already defined. Flag definition is lack of duplicate check.")
	}

	c := &cliAndEnvFlag{
		FlagClause:  app.Flag(flagName, description),
		name:        flagName,
		description: description,
	}
	c.OverrideDefaultFromEnvar(c.envName())

	for _, defaultValue := range defaultValues {
		if defaultValue == "" {
			continue
		}
		c.Default(defaultValue)
	}

	return c
}

func register(flagName string, flag flagType) {
	definedFlags[flagName] = flag
	flagOrder = append(flagOrder, flagName)
	isEnvParsed = false
}

// lookup returns already defined flag of type T or panics when the type differs.
func lookup[T flagType](flagName string) (flag T, found bool) {
	duplicatedFlag := definedFlags[flagName]
	if duplicatedFlag == nil {
		return flag, false
	}
	flag, ok := duplicatedFlag.(T)
	if !ok {
		panic("Flag was redefined but with different type. Unify the type.")
	}
	return flag, true
}

// envName returns name converted to environment variable name.
// For instance: "hostfile" will be "KMBENCH_HOSTFILE".
func (f *cliAndEnvFlag) envName() string {
	return envName(f.name)
}

// clear unsets the corresponding environment variable.
func (f *cliAndEnvFlag) clear() {
	os.Unsetenv(f.envName())
}

func (f *cliAndEnvFlag) help() string {
	return f.description
}

// StringFlag represents flag with string value.
type StringFlag struct {
	*cliAndEnvFlag
	defaultValue string
	value        *string
}

// NewStringFlag is a constructor of StringFlag struct.
func NewStringFlag(flagName string, description string, defaultValue string) *StringFlag {
	if flagDef, ok := lookup[*StringFlag](flagName); ok {
		if flagDef.defaultValue != defaultValue {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &StringFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.String()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s StringFlag) Value() string {
	if !isEnvParsed {
		return s.defaultValue
	}
	return *s.value
}

func (s StringFlag) stringValue() string   { return s.Value() }
func (s StringFlag) defaultString() string { return s.defaultValue }

// IntFlag represents flag with int value.
type IntFlag struct {
	*cliAndEnvFlag
	defaultValue int
	value        *int
}

// NewIntFlag is a constructor of IntFlag struct.
func NewIntFlag(flagName string, description string, defaultValue int) *IntFlag {
	if flagDef, ok := lookup[*IntFlag](flagName); ok {
		if flagDef.defaultValue != defaultValue {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &IntFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.Itoa(defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Int()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (i IntFlag) Value() int {
	if !isEnvParsed {
		return i.defaultValue
	}
	return *i.value
}

func (i IntFlag) stringValue() string   { return strconv.Itoa(i.Value()) }
func (i IntFlag) defaultString() string { return strconv.Itoa(i.defaultValue) }

// FloatFlag represents flag with float value.
type FloatFlag struct {
	*cliAndEnvFlag
	defaultValue float64
	value        *float64
}

// NewFloatFlag is a constructor of FloatFlag struct.
func NewFloatFlag(flagName string, description string, defaultValue float64) *FloatFlag {
	if flagDef, ok := lookup[*FloatFlag](flagName); ok {
		if flagDef.defaultValue != defaultValue {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &FloatFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.FormatFloat(defaultValue, 'g', -1, 64)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Float64()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (f FloatFlag) Value() float64 {
	if !isEnvParsed {
		return f.defaultValue
	}
	return *f.value
}

func (f FloatFlag) stringValue() string { return strconv.FormatFloat(f.Value(), 'g', -1, 64) }
func (f FloatFlag) defaultString() string {
	return strconv.FormatFloat(f.defaultValue, 'g', -1, 64)
}

// SliceFlag represents flag with slice value.
type SliceFlag struct {
	*cliAndEnvFlag
	defaultValue []string
	value        *[]string
}

// NewSliceFlag is a constructor of SliceFlag struct.
func NewSliceFlag(flagName string, description string, elemsInDefaultSlice ...string) *SliceFlag {
	if flagDef, ok := lookup[*SliceFlag](flagName); ok {
		if strings.Join(flagDef.defaultValue, stringListDelimiter) != strings.Join(elemsInDefaultSlice, stringListDelimiter) {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &SliceFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strings.Join(elemsInDefaultSlice, stringListDelimiter)),
		defaultValue:  elemsInDefaultSlice,
	}
	flagDef.value = StringList(flagDef)
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s SliceFlag) Value() []string {
	if !isEnvParsed {
		return append([]string{}, s.defaultValue...)
	}
	if *s.value == nil {
		return []string{}
	}
	return *s.value
}

func (s SliceFlag) stringValue() string { return strings.Join(s.Value(), stringListDelimiter) }
func (s SliceFlag) defaultString() string {
	return strings.Join(s.defaultValue, stringListDelimiter)
}

// BoolFlag represents flag with bool value.
type BoolFlag struct {
	*cliAndEnvFlag
	defaultValue bool
	value        *bool
}

// NewBoolFlag is a constructor of BoolFlag struct.
func NewBoolFlag(flagName string, description string, defaultValue bool) *BoolFlag {
	if flagDef, ok := lookup[*BoolFlag](flagName); ok {
		if flagDef.defaultValue != defaultValue {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &BoolFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.FormatBool(defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Bool()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (b BoolFlag) Value() bool {
	if !isEnvParsed {
		return b.defaultValue
	}
	return *b.value
}

func (b BoolFlag) stringValue() string   { return strconv.FormatBool(b.Value()) }
func (b BoolFlag) defaultString() string { return strconv.FormatBool(b.defaultValue) }

// DurationFlag represents flag with duration value.
type DurationFlag struct {
	*cliAndEnvFlag
	defaultValue time.Duration
	value        *time.Duration
}

// NewDurationFlag is a constructor of DurationFlag struct.
func NewDurationFlag(flagName string, description string, defaultValue time.Duration) *DurationFlag {
	if flagDef, ok := lookup[*DurationFlag](flagName); ok {
		if flagDef.defaultValue != defaultValue {
			panic("Flag was redefined but with different default value. Unify the default.")
		}
		return flagDef
	}

	flagDef := &DurationFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue.String()),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Duration()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (d DurationFlag) Value() time.Duration {
	if !isEnvParsed {
		return d.defaultValue
	}
	return *d.value
}

func (d DurationFlag) stringValue() string   { return d.Value().String() }
func (d DurationFlag) defaultString() string { return d.defaultValue.String() }
