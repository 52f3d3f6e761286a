// Package taintcheck exports the taint Analyzer.
package taintcheck

import internal "github.com/google/go-flow-taint/internal/pkg/taintcheck"

// Analyzer reports values from taint sources that reach taint sinks.
var Analyzer = internal.Analyzer
