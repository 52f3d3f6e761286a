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

package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogGroupLevels(t *testing.T) {
	l := NewLogGroup(&Config{LogLevel: int(InfoLevel)})
	var buf bytes.Buffer
	l.SetAllOutput(&buf)

	l.Tracef("trace %d", 1)
	l.Debugf("debug %d", 2)
	l.Infof("info %d", 3)
	l.Warnf("warn %d", 4)
	l.Errorf("error %d", 5)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []struct{ prefix, msg string }{
		{"[INFO] ", "info 3"},
		{"[WARN] ", "warn 4"},
		{"[ERROR] ", "error 5"},
	}
	if len(lines) != len(want) {
		t.Fatalf("log output = %q, want %d lines", buf.String(), len(want))
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w.prefix) || !strings.HasSuffix(lines[i], w.msg) {
			t.Errorf("line %d = %q, want %q ... %q", i, lines[i], w.prefix, w.msg)
		}
	}
}

func TestLevel(t *testing.T) {
	if got := NewLogGroup(&Config{LogLevel: int(TraceLevel)}).Level(); got != TraceLevel {
		t.Errorf("Level() = %d, want %d", got, TraceLevel)
	}
	if got := NewLogGroup(nil).Level(); got != WarnLevel {
		t.Errorf("Level() = %d, want %d", got, WarnLevel)
	}
}

func TestNewLogGroupDefaultsToWarn(t *testing.T) {
	l := NewLogGroup(nil)
	var buf bytes.Buffer
	l.SetAllOutput(&buf)

	l.Infof("hidden")
	l.Warnf("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output at the default level: %q", buf.String())
	}
}
