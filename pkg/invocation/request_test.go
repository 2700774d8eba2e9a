// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRequest_Defaults(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	if !req.Recursive {
		t.Error("expected Recursive to default to true")
	}
	if !req.ShellEnvironmentInherited {
		t.Error("expected ShellEnvironmentInherited to default to true")
	}
	if req.TimeoutInSeconds != NoTimeout {
		t.Errorf("TimeoutInSeconds = %d, want NoTimeout", req.TimeoutInSeconds)
	}
	if req.BatchMode {
		t.Error("expected BatchMode to default to false")
	}
}

func TestRequest_Clone(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	req.Goals = []string{"clean"}
	req.Properties = map[string]string{"a": "1"}

	c := req.Clone()
	c.Goals[0] = "install"
	c.Properties["a"] = "2"

	if req.Goals[0] != "clean" {
		t.Errorf("clone shares Goals backing array: %v", req.Goals)
	}
	if req.Properties["a"] != "1" {
		t.Errorf("clone shares Properties map: %v", req.Properties)
	}
}

func TestRequest_Fallbacks(t *testing.T) {
	t.Parallel()

	def := strings.NewReader("default")
	defOut := NopHandler()

	req := NewRequest()
	if got := req.InputStreamOr(def); got != def {
		t.Error("InputStreamOr() should fall back to the default")
	}
	if got := req.OutputHandlerOr(defOut); got != defOut {
		t.Error("OutputHandlerOr() should fall back to the default")
	}
	if got := req.ErrorHandlerOr(defOut); got != defOut {
		t.Error("ErrorHandlerOr() should fall back to the default")
	}
	if got := req.LocalRepositoryOr("/repo"); got != "/repo" {
		t.Errorf("LocalRepositoryOr() = %q, want /repo", got)
	}

	own := strings.NewReader("own")
	req.InputStream = own
	req.LocalRepositoryDirectory = "/mine"
	if got := req.InputStreamOr(def); got != own {
		t.Error("InputStreamOr() should prefer the request value")
	}
	if got := req.LocalRepositoryOr("/repo"); got != "/mine" {
		t.Errorf("LocalRepositoryOr() = %q, want /mine", got)
	}
}

func TestWriterHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := WriterHandler(&buf)
	h.ConsumeLine("one")
	h.ConsumeLine("two")

	if got := buf.String(); got != "one\ntwo\n" {
		t.Errorf("WriterHandler output = %q", got)
	}
}

func TestOutputHandlerFunc(t *testing.T) {
	t.Parallel()

	var lines []string
	var h OutputHandler = OutputHandlerFunc(func(line string) { lines = append(lines, line) })
	h.ConsumeLine("x")
	NopHandler().ConsumeLine("ignored")

	if len(lines) != 1 || lines[0] != "x" {
		t.Errorf("lines = %v", lines)
	}
}
