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

// Package taintcheck defines an analyzer that reports values from taint
// sources reaching taint sinks without passing through a sanitizer.
//
// Sources, sinks and sanitizers come from //taint: directives on function
// declarations, which are exported as facts so that importing packages see
// them, and from the configuration file. The analysis starts at the
// configured entry function; packages without it are not analyzed.
package taintcheck

import (
	"errors"
	"fmt"

	"github.com/google/go-flow-taint/internal/pkg/classify"
	"github.com/google/go-flow-taint/internal/pkg/config"
	"github.com/google/go-flow-taint/internal/pkg/debug"
	"github.com/google/go-flow-taint/internal/pkg/debug/render"
	"github.com/google/go-flow-taint/internal/pkg/diagnostic"
	"github.com/google/go-flow-taint/internal/pkg/directive"
	"github.com/google/go-flow-taint/internal/pkg/interproc"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/lower"
	"github.com/google/go-flow-taint/internal/pkg/utils"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

// classFact records the classification a directive gave a function.
type classFact struct {
	Kind classify.Kind
}

func (*classFact) AFact() {}

func (f *classFact) String() string {
	return "taint:" + f.Kind.String()
}

var Analyzer = &analysis.Analyzer{
	Name:      "taint",
	Run:       run,
	Flags:     config.FlagSet,
	Doc:       "reports values from taint sources that reach taint sinks without being sanitized",
	Requires:  []*analysis.Analyzer{buildssa.Analyzer},
	FactTypes: []analysis.Fact{new(classFact)},
}

func run(pass *analysis.Pass) (interface{}, error) {
	conf, err := config.ReadConfig()
	if err != nil {
		return nil, err
	}
	log := config.NewLogGroup(conf)
	ssaInput := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	ignores := directive.IgnoreSet{}
	for _, f := range pass.Files {
		fns, problems := directive.ScanFunctions(f)
		exportFacts(pass, ssaInput, fns)
		for _, p := range problems {
			reportProblem(pass, p)
		}
		for _, pos := range directive.Misplaced(f) {
			pass.Reportf(pos, "taint directive has no effect here; it must be in the doc comment of a function declaration")
		}
		ignores.Add(pass.Fset, f)
	}

	entry := ssaInput.Pkg.Func(conf.Entry)
	if entry == nil || len(entry.Blocks) == 0 {
		log.Debugf("%s has no function %s, skipping", pass.Pkg.Path(), conf.Entry)
		return nil, nil
	}

	reg := lower.NewRegistry()
	oracle := classify.Chain(
		factOracle(pass, reg),
		classify.FromMatcher(conf, reg.Decompose),
	)
	prog := lower.NewProgram(reg, oracle, lower.WithExclude(func(fn *ssa.Function) bool {
		return conf.IsExcluded(utils.DecomposeFunction(fn))
	}))

	findings := &diagnostic.Collector{}
	res, err := interproc.Analyze(prog, oracle, findings,
		interproc.WithEntry(reg.Add(entry)),
		interproc.WithMaxDepth(conf.MaxDepth),
		interproc.WithLogger(log),
	)
	if err != nil {
		log.Errorf("%s: %v", pass.Pkg.Path(), err)
		return nil, fmt.Errorf("taint analysis of %s: %w", pass.Pkg.Path(), err)
	}
	log.Infof("%s: %d analyses, %d findings", pass.Pkg.Path(), res.Analyses, findings.Len())
	if conf.DumpDir != "" && res.EntryStates != nil {
		body := res.EntryStates.Body
		if err := debug.WriteGraph(conf.DumpDir, body.Func, render.DOT(body, res.EntryStates)); err != nil {
			log.Warnf("writing graph of %s: %v", body.Func, err)
		}
	}

	for _, f := range findings.Findings() {
		if ignores.Covers(pass.Fset, f.Location.Pos) {
			log.Debugf("ignoring %s", f)
			continue
		}
		report(pass, conf, f.Location.Pos, f.Message())
	}
	return nil, nil
}

// exportFacts exports the classifications of the annotated functions
// in the package being analyzed.
func exportFacts(pass *analysis.Pass, ssaInput *buildssa.SSA, fns directive.Functions) {
	if len(fns) == 0 {
		return
	}
	for _, fn := range ssaInput.SrcFuncs {
		kind, ok := fns[fn.Pos()]
		if !ok || fn.Object() == nil {
			continue
		}
		pass.ExportObjectFact(fn.Object(), &classFact{Kind: kind})
	}
}

// factOracle classifies functions by the facts exported for them,
// in this package or in the packages it imports.
func factOracle(pass *analysis.Pass, reg *lower.Registry) classify.Oracle {
	return classify.OracleFunc(func(id ir.FuncID) classify.Kind {
		fn, ok := reg.Lookup(id)
		if !ok || fn.Object() == nil {
			return classify.Unclassified
		}
		var fact classFact
		if !pass.ImportObjectFact(fn.Object(), &fact) {
			return classify.Unclassified
		}
		return fact.Kind
	})
}

func reportProblem(pass *analysis.Pass, p directive.Problem) {
	if errors.Is(p.Err, directive.ErrInvalid) {
		pass.Reportf(p.Pos, "%s", diagnostic.Finding{Kind: diagnostic.InvalidDirective, Func: ir.FuncID(p.Name)}.Message())
		return
	}
	pass.Reportf(p.Pos, "%v", p.Err)
}
