package main

import (
	"github.com/google/go-flow-taint/pkg/taintcheck"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(taintcheck.Analyzer)
}
