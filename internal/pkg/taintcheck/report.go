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

package taintcheck

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/config"
	"golang.org/x/tools/go/analysis"
)

func report(pass *analysis.Pass, conf *config.Config, pos token.Pos, msg string) {
	var b strings.Builder
	b.WriteString(msg)
	if conf.ReportMessage != "" {
		fmt.Fprintf(&b, "\n %v", conf.ReportMessage)
	}
	pass.Reportf(pos, "%s", b.String())
}
