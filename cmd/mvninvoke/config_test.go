// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/mvninvoke/internal/config"
	"github.com/invowk/mvninvoke/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ci.cue")
	if err := os.WriteFile(path, []byte(`
maven_home: "/opt/maven"
properties: skipTests: "true"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	res := executeWith(t, config.NewProvider(), "--config", path, "config", "show")
	if res.err != nil {
		t.Fatalf("config show error = %v, stderr:\n%s", res.err, res.stderr)
	}
	for _, want := range []string{path, "/opt/maven", "skipTests", "spawn_on_host"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfigShow_InvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.cue")
	if err := os.WriteFile(path, []byte(`timeout_seconds: -3`), 0o644); err != nil {
		t.Fatal(err)
	}

	res := executeWith(t, config.NewProvider(), "--config", path, "config", "show")
	if code := exitCode(t, res.err); code != exitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, exitCodeFailure)
	}
	if !strings.Contains(res.stderr, "timeout_seconds") {
		t.Errorf("stderr should name the invalid field:\n%s", res.stderr)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.MavenHome = "/opt/maven"

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		res := execute(t, cfg, "config", "dump", "--format", "json")
		if res.err != nil {
			t.Fatalf("dump error = %v", res.err)
		}
		var decoded config.Config
		if err := json.Unmarshal([]byte(res.stdout), &decoded); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
		}
		if decoded.MavenHome != "/opt/maven" {
			t.Errorf("MavenHome = %q", decoded.MavenHome)
		}
	})

	t.Run("cue", func(t *testing.T) {
		t.Parallel()

		res := execute(t, cfg, "config", "dump")
		if !strings.Contains(res.stdout, `maven_home: "/opt/maven"`) {
			t.Errorf("output = %s", res.stdout)
		}
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		res := execute(t, cfg, "config", "dump", "--format", "toml")
		if !strings.Contains(res.stdout, "maven_home = ") || !strings.Contains(res.stdout, "/opt/maven") {
			t.Errorf("output = %s", res.stdout)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		if res := execute(t, cfg, "config", "dump", "--format", "yaml"); res.err == nil {
			t.Error("expected error for yaml")
		}
	})
}

// config init and path use the platform config directory, which tests
// redirect through environment variables; this test therefore does not run in parallel.
func TestConfigInitAndPath(t *testing.T) {
	configRoot := testutil.SetConfigHome(t, t.TempDir())

	res := execute(t, nil, "config", "init")
	if res.err != nil {
		t.Fatalf("config init error = %v", res.err)
	}
	want := filepath.Join(configRoot, config.AppName, "config.cue")
	if !strings.Contains(res.stdout, want) {
		t.Errorf("init output = %q, want path %q", res.stdout, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	res = execute(t, nil, "config", "init")
	if !strings.Contains(res.stdout, "already exists") {
		t.Errorf("second init output = %q", res.stdout)
	}

	res = execute(t, nil, "config", "path")
	if !strings.Contains(res.stdout, want) {
		t.Errorf("path output = %q, want config file %q", res.stdout, want)
	}
}
