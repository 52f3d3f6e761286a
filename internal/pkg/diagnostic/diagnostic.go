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

// Package diagnostic defines the findings produced by the taint analysis
// and the Sink they are reported to.
//
// Findings never affect the dataflow computation. Reporting one does not
// stop the analysis.
package diagnostic

import (
	"fmt"

	"github.com/google/go-flow-taint/internal/pkg/ir"
	"golang.org/x/exp/slices"
)

// Kind identifies the type of a finding.
type Kind int

const (
	// TaintedSink: a sink received an operand whose alias group contains
	// a tainted slot.
	TaintedSink Kind = iota + 1
	// InvalidDirective: a taint directive names an unsupported classification.
	InvalidDirective
)

// Code returns the stable diagnostic code of k.
func (k Kind) Code() string {
	switch k {
	case TaintedSink:
		return "T0001"
	case InvalidDirective:
		return "T0002"
	}
	return "T0000"
}

func (k Kind) String() string {
	switch k {
	case TaintedSink:
		return "TaintedSink"
	case InvalidDirective:
		return "InvalidDirective"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Finding is one reported violation.
type Finding struct {
	Kind Kind
	// Func is the called sink for TaintedSink findings,
	// or the directive name for InvalidDirective findings.
	Func     ir.FuncID
	Location ir.Location
}

// Message renders the finding for humans.
func (f Finding) Message() string {
	switch f.Kind {
	case TaintedSink:
		return fmt.Sprintf("function `%s` received tainted input [%s]", f.Func, f.Kind.Code())
	case InvalidDirective:
		return fmt.Sprintf("taint directive `%s` is invalid; only `source`, `sink` and `sanitizer` are supported [%s]", f.Func, f.Kind.Code())
	}
	return fmt.Sprintf("%s at %s", f.Kind, f.Location)
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Location, f.Message())
}

// A Sink receives findings.
type Sink interface {
	Report(Finding)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Finding)

// Report implements Sink.
func (f SinkFunc) Report(finding Finding) { f(finding) }

type key struct {
	kind Kind
	loc  ir.Location
}

// Collector is a Sink that keeps each distinct finding once.
// The fixpoint solver may visit a sink call several times; only the
// first report at a location is kept.
type Collector struct {
	seen     map[key]bool
	findings []Finding
	// Forward, if set, receives every finding the first time it is seen.
	Forward Sink
}

// Report implements Sink.
func (c *Collector) Report(f Finding) {
	if c.seen == nil {
		c.seen = make(map[key]bool)
	}
	k := key{f.Kind, f.Location}
	if c.seen[k] {
		return
	}
	c.seen[k] = true
	c.findings = append(c.findings, f)
	if c.Forward != nil {
		c.Forward.Report(f)
	}
}

// Len returns the number of distinct findings.
func (c *Collector) Len() int {
	return len(c.findings)
}

// Findings returns the distinct findings ordered by function, block and index.
func (c *Collector) Findings() []Finding {
	out := slices.Clone(c.findings)
	slices.SortStableFunc(out, func(a, b Finding) bool {
		return less(a.Location, b.Location)
	})
	return out
}

func less(a, b ir.Location) bool {
	if a.Func != b.Func {
		return a.Func < b.Func
	}
	if a.Block != b.Block {
		return a.Block < b.Block
	}
	return a.Index < b.Index
}
