// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads the analysis configuration: which functions are
// sources, sinks and sanitizers, where analysis starts, and how much
// to log.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/google/go-flow-taint/internal/pkg/config/regexp"
)

// FlagSet should be used by analyzers to reuse -config flag.
var FlagSet flag.FlagSet

func init() {
	FlagSet.Var(fileFlag{}, "config", "path to analysis configuration file (YAML); empty means directives only")
}

const (
	defaultEntry    = "main"
	defaultMaxDepth = 64
)

// Config contains matchers and analysis scope information.
type Config struct {
	Sources    []funcMatcher
	Sinks      []funcMatcher
	Sanitizers []funcMatcher
	// Exclude lists functions whose bodies are never analyzed.
	Exclude []funcMatcher
	// Entry names the function analysis starts from. Defaults to "main".
	Entry string
	// MaxDepth bounds the nesting of callee reanalysis.
	MaxDepth int
	// ReportMessage, if set, is appended to every finding.
	ReportMessage string
	// LogLevel is one of the LogLevel constants. Defaults to WarnLevel.
	LogLevel int
	// DumpDir, if set, receives a DOT graph of each analyzed entry function.
	DumpDir string
}

func (c *Config) setDefaults() {
	if c.Entry == "" {
		c.Entry = defaultEntry
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.LogLevel == 0 {
		c.LogLevel = int(WarnLevel)
	}
}

func (c Config) IsSource(path, recv, name string) bool {
	return matchAny(c.Sources, path, recv, name)
}

func (c Config) IsSink(path, recv, name string) bool {
	return matchAny(c.Sinks, path, recv, name)
}

func (c Config) IsSanitizer(path, recv, name string) bool {
	return matchAny(c.Sanitizers, path, recv, name)
}

// IsExcluded determines if a function matches one of the exclusion patterns.
func (c Config) IsExcluded(path, recv, name string) bool {
	return matchAny(c.Exclude, path, recv, name)
}

func matchAny(ms []funcMatcher, path, recv, name string) bool {
	for _, m := range ms {
		if m.MatchFunction(path, recv, name) {
			return true
		}
	}
	return false
}

type stringMatcher interface {
	MatchString(string) bool
}

type literalMatcher string

func (lm literalMatcher) MatchString(s string) bool {
	return string(lm) == s
}

type vacuousMatcher struct{}

func (vacuousMatcher) MatchString(s string) bool {
	return true
}

// Returns the first non-nil matcher.  If all are nil, returns a vacuousMatcher.
func matcherFrom(lm *literalMatcher, r *regexp.Regexp) stringMatcher {
	switch {
	case lm != nil:
		return lm
	case r != nil:
		return r
	default:
		return vacuousMatcher{}
	}
}

// A funcMatcher matches by package, receiver and function name.
// Matching may be done against string literals Package, Receiver, Method,
// or against regexp PackageRE, ReceiverRE, MethodRE.
type funcMatcher struct {
	Package  stringMatcher
	Receiver stringMatcher
	Method   stringMatcher
}

// this type uses the default unmarshaler and mirrors configuration key-value pairs
type rawFuncMatcher struct {
	Package    *literalMatcher
	Receiver   *literalMatcher
	Method     *literalMatcher
	PackageRE  *regexp.Regexp
	ReceiverRE *regexp.Regexp
	MethodRE   *regexp.Regexp
}

func (fm *funcMatcher) UnmarshalJSON(bytes []byte) error {
	raw := rawFuncMatcher{}
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return err
	}

	// validation: do not double-specify any attribute with literal and regexp
	if raw.Package != nil && raw.PackageRE != nil {
		return fmt.Errorf("expected at most one of Package, PackageRE to be configured")
	}
	if raw.Receiver != nil && raw.ReceiverRE != nil {
		return fmt.Errorf("expected at most one of Receiver, ReceiverRE to be configured")
	}
	if raw.Method != nil && raw.MethodRE != nil {
		return fmt.Errorf("expected at most one of Method, MethodRE to be configured")
	}

	// Unpack raw object into funcMatcher
	*fm = funcMatcher{
		Package:  matcherFrom(raw.Package, raw.PackageRE),
		Receiver: matcherFrom(raw.Receiver, raw.ReceiverRE),
		Method:   matcherFrom(raw.Method, raw.MethodRE),
	}
	return nil
}

func (fm funcMatcher) MatchFunction(path, receiver, name string) bool {
	return fm.Package.MatchString(path) && fm.Receiver.MatchString(receiver) && fm.Method.MatchString(name)
}

// The configuration is read once and cached until the -config flag
// or SetBytes changes where it comes from.
var (
	mu                  sync.Mutex
	configFile          string
	configBytes         []byte
	readConfigCached    *Config
	readConfigCachedErr error
	cacheValid          bool
)

type fileFlag struct{}

func (fileFlag) String() string {
	mu.Lock()
	defer mu.Unlock()
	return configFile
}

func (fileFlag) Set(path string) error {
	mu.Lock()
	defer mu.Unlock()
	configFile = path
	configBytes = nil
	cacheValid = false
	return nil
}

// SetBytes makes ReadConfig parse bytes instead of reading a file.
func SetBytes(bytes []byte) {
	mu.Lock()
	defer mu.Unlock()
	configBytes = bytes
	cacheValid = false
}

// ReadConfig returns the current configuration.
// With neither a file nor bytes set, it returns the defaults.
func ReadConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if !cacheValid {
		readConfigCached, readConfigCachedErr = load()
		cacheValid = true
	}
	return readConfigCached, readConfigCachedErr
}

func load() (*Config, error) {
	bytes := configBytes
	if bytes == nil && configFile != "" {
		var err error
		bytes, err = ioutil.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading analysis config: %v", err)
		}
	}
	return Parse(bytes)
}

// Parse parses a YAML configuration and fills in defaults.
func Parse(bytes []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.UnmarshalStrict(bytes, c); err != nil {
		return nil, fmt.Errorf("error parsing analysis config: %v", err)
	}
	c.setDefaults()
	return c, nil
}
