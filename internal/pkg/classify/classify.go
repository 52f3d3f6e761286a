// Copyright 2022 Google LLC
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

// Package classify answers, for a call target, whether it is a taint
// Source, Sink or Sanitizer.
//
// Classifications are computed before the analysis starts and do not change
// while it runs.
package classify

import (
	"errors"
	"fmt"

	"github.com/google/go-flow-taint/internal/pkg/ir"
)

// Kind is the classification of a call target.
type Kind int

const (
	Unclassified Kind = iota
	// Source calls return tainted values.
	Source
	// Sink calls must not receive tainted values.
	Sink
	// Sanitizer calls return untainted values, whatever their input.
	Sanitizer
)

func (k Kind) String() string {
	switch k {
	case Unclassified:
		return "unclassified"
	case Source:
		return "source"
	case Sink:
		return "sink"
	case Sanitizer:
		return "sanitizer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a classification as written in directives.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "source":
		return Source, true
	case "sink":
		return Sink, true
	case "sanitizer":
		return Sanitizer, true
	}
	return Unclassified, false
}

// An Oracle classifies call targets.
type Oracle interface {
	Classify(fn ir.FuncID) Kind
}

// OracleFunc adapts a function to an Oracle.
type OracleFunc func(ir.FuncID) Kind

// Classify implements Oracle.
func (f OracleFunc) Classify(fn ir.FuncID) Kind { return f(fn) }

// ErrConflict is returned when a function is given two different classifications.
var ErrConflict = errors.New("conflicting classifications")

// Table is an Oracle backed by a map. Missing entries are Unclassified.
type Table map[ir.FuncID]Kind

// NewTable builds a Table from lists of sources, sinks and sanitizers.
func NewTable(sources, sinks, sanitizers []ir.FuncID) (Table, error) {
	t := Table{}
	for _, group := range []struct {
		kind Kind
		fns  []ir.FuncID
	}{{Source, sources}, {Sink, sinks}, {Sanitizer, sanitizers}} {
		for _, fn := range group.fns {
			if err := t.Add(fn, group.kind); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Add records that fn has classification k.
// Re-adding the same classification is allowed.
func (t Table) Add(fn ir.FuncID, k Kind) error {
	if prev, ok := t[fn]; ok && prev != k {
		return fmt.Errorf("%w: %s is both a %s and a %s", ErrConflict, fn, prev, k)
	}
	t[fn] = k
	return nil
}

// Classify implements Oracle.
func (t Table) Classify(fn ir.FuncID) Kind {
	return t[fn]
}

// Chain asks each oracle in turn and returns the first classified answer.
func Chain(oracles ...Oracle) Oracle {
	return OracleFunc(func(fn ir.FuncID) Kind {
		for _, o := range oracles {
			if k := o.Classify(fn); k != Unclassified {
				return k
			}
		}
		return Unclassified
	})
}

// A Matcher decides classifications from the package path, receiver type
// name and function name of a target. *config.Config is a Matcher.
type Matcher interface {
	IsSource(path, recv, name string) bool
	IsSink(path, recv, name string) bool
	IsSanitizer(path, recv, name string) bool
}

// Decomposer splits a FuncID into package path, receiver and name.
// It returns false for ids it does not know.
type Decomposer func(ir.FuncID) (path, recv, name string, ok bool)

// FromMatcher returns an Oracle that consults m.
// Sources take precedence over sinks, and sinks over sanitizers.
func FromMatcher(m Matcher, decompose Decomposer) Oracle {
	return OracleFunc(func(fn ir.FuncID) Kind {
		path, recv, name, ok := decompose(fn)
		if !ok {
			return Unclassified
		}
		switch {
		case m.IsSource(path, recv, name):
			return Source
		case m.IsSink(path, recv, name):
			return Sink
		case m.IsSanitizer(path, recv, name):
			return Sanitizer
		}
		return Unclassified
	})
}
