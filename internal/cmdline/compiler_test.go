// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/invowk/mvninvoke/internal/logging"
	"github.com/invowk/mvninvoke/internal/testutil"
	"github.com/invowk/mvninvoke/internal/toolpath"
	"github.com/invowk/mvninvoke/pkg/invocation"
	"github.com/invowk/mvninvoke/pkg/platform"
)

var hostEnv = map[string]string{"PATH": "/usr/bin", "HOME": "/home/builder"}

// newTestCompiler returns a compiler whose executable is a fixed absolute path,
// so tests do not depend on a Maven installation.
func newTestCompiler(t *testing.T) (*Compiler, string) {
	t.Helper()
	exe := filepath.Join(t.TempDir(), "mvn")
	c := New(logging.Discard(), &toolpath.Resolver{Environ: hostEnv}, Defaults{MavenExecutable: exe})
	return c, exe
}

// newProject returns a canonical project directory containing a pom.xml.
func newProject(t *testing.T) string {
	t.Helper()
	dir := testutil.MustCanonical(t, t.TempDir())
	testutil.MustWriteFile(t, filepath.Join(dir, "pom.xml"), "<project/>")
	return dir
}

func mustCompile(t *testing.T, c *Compiler, req *invocation.Request) *Command {
	t.Helper()
	cmd, err := c.Compile(context.Background(), req)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return cmd
}

func TestCompile_FullArgumentOrder(t *testing.T) {
	t.Parallel()

	c, exe := newTestCompiler(t)
	dir := newProject(t)
	repo := testutil.MustCanonical(t, t.TempDir())
	settingsDir := testutil.MustCanonical(t, t.TempDir())
	settings := filepath.Join(settingsDir, "settings.xml")
	testutil.MustWriteFile(t, settings, "<settings/>")

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	req.PomFileName = "custom.xml"
	req.BatchMode = true
	req.Offline = true
	req.UpdateSnapshots = invocation.UpdateSnapshotsAlways
	req.Recursive = false
	req.ShowErrors = true
	req.GlobalChecksumPolicy = invocation.ChecksumPolicyFail
	req.NonPluginUpdates = true
	req.ShowVersion = true
	req.Quiet = true
	req.NoTransferProgress = true
	req.Builder = "smart"
	req.ReactorFailureBehavior = invocation.FailAtEnd
	req.ResumeFrom = ":core"
	req.Projects = []string{"core", "web"}
	req.AlsoMake = true
	req.AlsoMakeDependents = true
	req.LocalRepositoryDirectory = repo
	req.UserSettingsFile = settings
	req.Properties = map[string]string{"skipTests": "true", "a": "1"}
	req.Profiles = []string{"ci", "release"}
	req.Goals = []string{"clean", "install"}
	req.Args = []string{"-Drevision=1.0"}
	req.Threads = "2.0C"

	cmd := mustCompile(t, c, req)

	want := []string{
		"-B", "-o", "-U", "-N", "-e", "-C", "-npu", "-V", "-q", "-ntp", "-b", "smart",
		"-fae", "-rf", ":core", "-pl", "core,web", "-am", "-amd",
		"-D", "maven.repo.local=" + repo,
		"-f", "custom.xml",
		"-s", settings,
		"-D", "a=1", "-D", "skipTests=true",
		"-P", "ci,release",
		"clean", "install", "-Drevision=1.0",
		"-T", "2.0C",
	}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args =\n  %q\nwant\n  %q", cmd.Args, want)
	}
	if cmd.Executable != exe {
		t.Errorf("Executable = %q, want %q", cmd.Executable, exe)
	}
	if cmd.Dir != dir {
		t.Errorf("Dir = %q, want %q", cmd.Dir, dir)
	}
}

func TestCompile_NoFlagsForDefaults(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)

	cmd := mustCompile(t, c, req)
	if len(cmd.Args) != 0 {
		t.Errorf("Args = %q, want none", cmd.Args)
	}
}

func TestCompile_ReactorFailureBehavior(t *testing.T) {
	t.Parallel()

	tests := []struct {
		behavior invocation.ReactorFailureBehavior
		want     string
	}{
		{invocation.FailFast, ""},
		{invocation.FailAtEnd, "-fae"},
		{invocation.FailNever, "-fn"},
	}

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	for _, tt := range tests {
		req := invocation.NewRequest()
		req.BaseDirectory = dir
		req.ReactorFailureBehavior = tt.behavior

		cmd := mustCompile(t, c, req)
		hasFae, hasFn := slices.Contains(cmd.Args, "-fae"), slices.Contains(cmd.Args, "-fn")
		switch tt.want {
		case "":
			if hasFae || hasFn {
				t.Errorf("%s: Args = %q, want no reactor failure flag", tt.behavior, cmd.Args)
			}
		default:
			if !slices.Contains(cmd.Args, tt.want) {
				t.Errorf("%s: Args = %q, want %s", tt.behavior, cmd.Args, tt.want)
			}
		}
	}
}

func TestCompile_AlsoMakeRequiresProjects(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	req.AlsoMake = true
	req.AlsoMakeDependents = true

	cmd := mustCompile(t, c, req)
	if slices.Contains(cmd.Args, "-am") || slices.Contains(cmd.Args, "-amd") || slices.Contains(cmd.Args, "-pl") {
		t.Errorf("Args = %q, want no project flags without a project list", cmd.Args)
	}

	req.Projects = []string{"core"}
	cmd = mustCompile(t, c, req)
	pl := slices.Index(cmd.Args, "-pl")
	am := slices.Index(cmd.Args, "-am")
	if pl < 0 || cmd.Args[pl+1] != "core" {
		t.Fatalf("Args = %q, want -pl core", cmd.Args)
	}
	if am <= pl+1 {
		t.Errorf("Args = %q, want -am after the project list", cmd.Args)
	}
}

func TestCompile_DebugSuppressesShowErrors(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Debug = true
	req.ShowErrors = true

	cmd := mustCompile(t, c, req)
	if !slices.Contains(cmd.Args, "-X") {
		t.Errorf("Args = %q, want -X", cmd.Args)
	}
	if slices.Contains(cmd.Args, "-e") {
		t.Errorf("Args = %q, -e must be suppressed by -X", cmd.Args)
	}
}

func TestCompile_UpdateSnapshotsPolicy(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)

	tests := []struct {
		policy invocation.UpdateSnapshotsPolicy
		want   []string
	}{
		{invocation.UpdateSnapshotsDefault, nil},
		{invocation.UpdateSnapshotsAlways, []string{"-U"}},
		{invocation.UpdateSnapshotsNever, []string{"-nsu"}},
	}
	for _, tt := range tests {
		req := invocation.NewRequest()
		req.BaseDirectory = dir
		req.UpdateSnapshots = tt.policy
		cmd := mustCompile(t, c, req)
		if !slices.Equal(cmd.Args, tt.want) {
			t.Errorf("%s: Args = %q, want %q", tt.policy, cmd.Args, tt.want)
		}
	}
}

func TestCompile_ChecksumPolicy(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.GlobalChecksumPolicy = invocation.ChecksumPolicyWarn

	cmd := mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-c"}) {
		t.Errorf("Args = %q, want [-c]", cmd.Args)
	}
}

func TestCompile_PropertyWithSpaces(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Properties = map[string]string{"key with spaces": "value with spaces"}

	cmd := mustCompile(t, c, req)
	want := []string{"-D", "key with spaces=value with spaces"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Properties = map[string]string{"z": "26", "a": "1", "m": "13", "b": "2"}
	req.ShellEnvironments = map[string]string{"FOO": "bar"}
	req.Goals = []string{"verify"}

	first := mustCompile(t, c, req)
	second := mustCompile(t, c, req)

	if !reflect.DeepEqual(first.Args, second.Args) {
		t.Errorf("Args differ between compilations: %q vs %q", first.Args, second.Args)
	}
	if !reflect.DeepEqual(first.Env, second.Env) {
		t.Error("Env differs between compilations")
	}
	if first.String() != second.String() {
		t.Errorf("String() differs: %q vs %q", first.String(), second.String())
	}
}

func TestCompile_PomPlacement(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	cmd := mustCompile(t, c, req)
	if slices.Contains(cmd.Args, "-f") {
		t.Errorf("Args = %q, want no -f for <dir>/pom.xml", cmd.Args)
	}
	if cmd.Dir != dir {
		t.Errorf("Dir = %q, want %q", cmd.Dir, dir)
	}

	req.PomFileName = "custom.xml"
	cmd = mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-f", "custom.xml"}) {
		t.Errorf("Args = %q, want [-f custom.xml]", cmd.Args)
	}
}

func TestCompile_ExplicitPomFile(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	pom := filepath.Join(dir, "build.xml")
	testutil.MustWriteFile(t, pom, "<project/>")

	// Working directory derives from the POM's parent.
	req := invocation.NewRequest()
	req.PomFile = pom
	cmd := mustCompile(t, c, req)
	if cmd.Dir != dir {
		t.Errorf("Dir = %q, want POM parent %q", cmd.Dir, dir)
	}
	if !slices.Equal(cmd.Args, []string{"-f", "build.xml"}) {
		t.Errorf("Args = %q, want [-f build.xml]", cmd.Args)
	}

	// A POM outside the working directory is passed by full path.
	other := newProject(t)
	req.BaseDirectory = other
	cmd = mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-f", pom}) {
		t.Errorf("Args = %q, want [-f %s]", cmd.Args, pom)
	}

	// Even pom.xml needs -f when it lives elsewhere.
	req.PomFile = filepath.Join(dir, "pom.xml")
	cmd = mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-f", filepath.Join(dir, "pom.xml")}) {
		t.Errorf("Args = %q, want full path to foreign pom.xml", cmd.Args)
	}
}

func TestCompile_BaseDirectoryIsFile(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	pom := filepath.Join(dir, "alt.xml")
	testutil.MustWriteFile(t, pom, "<project/>")

	req := invocation.NewRequest()
	req.BaseDirectory = pom

	cmd := mustCompile(t, c, req)
	if cmd.Dir != dir {
		t.Errorf("Dir = %q, want parent %q", cmd.Dir, dir)
	}
	if !slices.Equal(cmd.Args, []string{"-f", "alt.xml"}) {
		t.Errorf("Args = %q, want [-f alt.xml]", cmd.Args)
	}
}

func TestCompile_DefaultWorkingDirectory(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	c.Defaults.WorkingDirectory = dir

	cmd := mustCompile(t, c, invocation.NewRequest())
	if cmd.Dir != dir {
		t.Errorf("Dir = %q, want default %q", cmd.Dir, dir)
	}
}

func TestCompile_LocalRepository(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	defaultRepo := testutil.MustCanonical(t, t.TempDir())
	requestRepo := testutil.MustCanonical(t, t.TempDir())
	c.Defaults.LocalRepositoryDirectory = defaultRepo

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	cmd := mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-D", "maven.repo.local=" + defaultRepo}) {
		t.Errorf("Args = %q, want default repository", cmd.Args)
	}

	req.LocalRepositoryDirectory = requestRepo
	cmd = mustCompile(t, c, req)
	if !slices.Equal(cmd.Args, []string{"-D", "maven.repo.local=" + requestRepo}) {
		t.Errorf("Args = %q, want request repository to win", cmd.Args)
	}
}

func TestCompile_LocalRepositoryNotDirectory(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	file := filepath.Join(dir, "repo.txt")
	testutil.MustWriteFile(t, file, "not a directory")

	for _, fromDefault := range []bool{false, true} {
		req := invocation.NewRequest()
		req.BaseDirectory = dir
		cc := *c
		if fromDefault {
			cc.Defaults.LocalRepositoryDirectory = file
		} else {
			req.LocalRepositoryDirectory = file
		}

		cmd, err := cc.Compile(context.Background(), req)
		if cmd != nil {
			t.Errorf("fromDefault=%v: expected no command, got %v", fromDefault, cmd.Args)
		}
		if !errors.Is(err, invocation.ErrConfiguration) || !errors.Is(err, invocation.ErrLocalRepositoryNotDirectory) {
			t.Errorf("fromDefault=%v: error = %v, want local repository configuration error", fromDefault, err)
		}
	}
}

func TestCompile_SettingsAndToolchains(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	conf := testutil.MustCanonical(t, t.TempDir())
	missing := filepath.Join(conf, "missing-toolchains.xml")

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	req.UserSettingsFile = filepath.Join(conf, "settings.xml")
	req.GlobalSettingsFile = filepath.Join(conf, "global-settings.xml")
	req.ToolchainsFile = filepath.Join(conf, "toolchains.xml")
	req.GlobalToolchainsFile = missing
	for _, f := range []string{req.UserSettingsFile, req.GlobalSettingsFile, req.ToolchainsFile} {
		testutil.MustWriteFile(t, f, "<x/>")
	}

	cmd := mustCompile(t, c, req)
	want := []string{
		"-s", req.UserSettingsFile,
		"-gs", req.GlobalSettingsFile,
		"-t", req.ToolchainsFile,
		"-gt", missing,
	}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCompile_GoalsAndArgs(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Goals = []string{"clean", `"-Dmessage=hello world"`, "install"}
	req.Args = []string{"-Dother=a b", "clean"}

	cmd := mustCompile(t, c, req)
	want := []string{"clean", "-Dmessage=hello world", "install", "-Dother=a b", "clean"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCompile_GoalsKeepBackslashes(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Goals = []string{`-Dmaven.repo.local=C:\repo\m2`, "install", `"-Dsep=a\tb c"`, `'-Dq="x"'`}

	cmd := mustCompile(t, c, req)
	want := []string{`-Dmaven.repo.local=C:\repo\m2`, "install", `-Dsep=a\tb c`, `-Dq="x"`}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCompile_GoalsKeepPropertyReferences(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Goals = []string{"deploy", "-Dversion=${project.version}"}

	cmd := mustCompile(t, c, req)
	want := []string{"deploy", "-Dversion=${project.version}"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCompile_InvalidGoalLine(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.Goals = []string{"clean", `"-Dunterminated`}

	_, err := c.Compile(context.Background(), req)
	if !errors.Is(err, invocation.ErrConfiguration) || !errors.Is(err, invocation.ErrInvalidGoals) {
		t.Errorf("Compile() error = %v, want invalid goals configuration error", err)
	}
}

func TestCompile_Environment(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	dir := newProject(t)
	javaHome := testutil.MustCanonical(t, t.TempDir())

	req := invocation.NewRequest()
	req.BaseDirectory = dir
	req.JavaHome = javaHome
	req.MavenOpts = "-Xmx1g"
	req.ShellEnvironments = map[string]string{"PATH": "/opt/bin", "MAVEN_OPTS": "-Xmx2g", "EXTRA": "1"}

	cmd := mustCompile(t, c, req)
	want := map[string]string{
		"PATH":                "/opt/bin",
		"HOME":                "/home/builder",
		"MAVEN_TERMINATE_CMD": "on",
		"JAVA_HOME":           javaHome,
		"MAVEN_OPTS":          "-Xmx2g",
		"EXTRA":               "1",
	}
	if !reflect.DeepEqual(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}
}

func TestCompile_EnvironmentNotInherited(t *testing.T) {
	t.Parallel()

	c, _ := newTestCompiler(t)
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.ShellEnvironmentInherited = false
	req.MavenOpts = "-Xmx1g"

	cmd := mustCompile(t, c, req)
	want := map[string]string{"MAVEN_OPTS": "-Xmx1g"}
	if !reflect.DeepEqual(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}

	req.MavenOpts = ""
	cmd = mustCompile(t, c, req)
	if env := cmd.Environ(); env == nil || len(env) != 0 {
		t.Errorf("Environ() = %#v, want empty non-nil slice", env)
	}
}

func TestCompile_ResolvedHomeReplacesInheritedHome(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	home := testutil.FakeMavenHome(t, t.TempDir(), "exit 0\n")
	wantHome := testutil.MustCanonical(t, home)
	host := map[string]string{"M2_HOME": "/opt/stale-maven-2", "MAVEN_HOME": "/opt/stale-maven", "PATH": "/usr/bin"}
	c := New(logging.Discard(), &toolpath.Resolver{Environ: host}, Defaults{MavenHome: home})

	tests := []struct {
		name      string
		inherit   bool
		overrides map[string]string
		want      map[string]string
	}{
		{
			name:    "inherited environment gets the resolved home",
			inherit: true,
			want: map[string]string{
				"M2_HOME":             wantHome,
				"MAVEN_HOME":          wantHome,
				"PATH":                "/usr/bin",
				"MAVEN_TERMINATE_CMD": "on",
			},
		},
		{
			name:      "explicit override still wins",
			inherit:   true,
			overrides: map[string]string{"M2_HOME": "/custom"},
			want: map[string]string{
				"M2_HOME":             "/custom",
				"MAVEN_HOME":          wantHome,
				"PATH":                "/usr/bin",
				"MAVEN_TERMINATE_CMD": "on",
			},
		},
		{
			name:    "clean environment is left clean",
			inherit: false,
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := invocation.NewRequest()
			req.BaseDirectory = newProject(t)
			req.ShellEnvironmentInherited = tt.inherit
			req.ShellEnvironments = tt.overrides

			cmd := mustCompile(t, c, req)
			if want := filepath.Join(wantHome, "bin", "mvn"); cmd.Executable != want {
				t.Errorf("Executable = %q, want %q", cmd.Executable, want)
			}
			if !reflect.DeepEqual(cmd.Env, tt.want) {
				t.Errorf("Env = %v, want %v", cmd.Env, tt.want)
			}
		})
	}
}

func TestCompile_EnvironmentKeyCase(t *testing.T) {
	t.Parallel()

	host := map[string]string{"Path": `C:\Windows`, "Java_Home": `C:\old-jdk`}
	exe := filepath.Join(t.TempDir(), "mvn.cmd")
	javaHome := testutil.MustCanonical(t, t.TempDir())

	tests := []struct {
		name string
		goos string
		want map[string]string
	}{
		{
			name: "windows replaces keys that differ only in case",
			goos: platform.Windows,
			want: map[string]string{
				"PATH":                `C:\jdk\bin`,
				"JAVA_HOME":           javaHome,
				"MAVEN_TERMINATE_CMD": "on",
			},
		},
		{
			name: "other systems keep distinct keys",
			goos: platform.Linux,
			want: map[string]string{
				"Path":                `C:\Windows`,
				"PATH":                `C:\jdk\bin`,
				"Java_Home":           `C:\old-jdk`,
				"JAVA_HOME":           javaHome,
				"MAVEN_TERMINATE_CMD": "on",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(logging.Discard(), &toolpath.Resolver{Environ: host, GOOS: tt.goos}, Defaults{MavenExecutable: exe})
			req := invocation.NewRequest()
			req.BaseDirectory = newProject(t)
			req.JavaHome = javaHome
			req.ShellEnvironments = map[string]string{"PATH": `C:\jdk\bin`}

			cmd := mustCompile(t, c, req)
			if !reflect.DeepEqual(cmd.Env, tt.want) {
				t.Errorf("Env = %v, want %v", cmd.Env, tt.want)
			}
		})
	}
}

func TestCompile_ProjectWrapperSelected(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	home := testutil.FakeMavenHome(t, t.TempDir(), "exit 0\n")
	dir := newProject(t)
	wrapper := testutil.WriteScript(t, dir, "mvnw", "exit 0\n")

	c := New(logging.Discard(), &toolpath.Resolver{}, Defaults{MavenHome: home})
	req := invocation.NewRequest()
	req.BaseDirectory = dir

	cmd := mustCompile(t, c, req)
	if cmd.Executable != wrapper {
		t.Errorf("Executable = %q, want project wrapper %q", cmd.Executable, wrapper)
	}
}

func TestCompile_RequestHomeOverridesDefault(t *testing.T) {
	t.Parallel()
	testutil.SkipOnWindows(t)

	defaultHome := testutil.FakeMavenHome(t, t.TempDir(), "exit 0\n")
	requestHome := testutil.FakeMavenHome(t, testutil.MustCanonical(t, t.TempDir()), "exit 0\n")

	c := New(logging.Discard(), &toolpath.Resolver{}, Defaults{MavenHome: defaultHome})
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)
	req.MavenHome = requestHome

	cmd := mustCompile(t, c, req)
	if want := filepath.Join(requestHome, "bin", "mvn"); cmd.Executable != want {
		t.Errorf("Executable = %q, want %q", cmd.Executable, want)
	}
}

func TestCompile_MissingHome(t *testing.T) {
	t.Parallel()

	c := New(logging.Discard(), &toolpath.Resolver{}, Defaults{})
	req := invocation.NewRequest()
	req.BaseDirectory = newProject(t)

	_, err := c.Compile(context.Background(), req)
	if !errors.Is(err, invocation.ErrConfiguration) || !errors.Is(err, invocation.ErrHomeNotFound) {
		t.Errorf("Compile() error = %v, want home-not-found configuration error", err)
	}
}

func TestCompile_LoggerRequired(t *testing.T) {
	t.Parallel()

	c := &Compiler{}
	_, err := c.Compile(context.Background(), invocation.NewRequest())
	if !errors.Is(err, invocation.ErrLoggerRequired) {
		t.Errorf("Compile() error = %v, want ErrLoggerRequired", err)
	}
}
