// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"io"
	"maps"
	"slices"
)

// NoTimeout disables the execution watchdog.
const NoTimeout = 0

// Request describes a single build run before it is translated into a
// process command line. Obtain one with NewRequest so that the fields whose
// default is true are initialized; the compiler never mutates it.
type Request struct {
	// BaseDirectory is the project directory and preferred working directory.
	BaseDirectory string
	// PomFile is an explicit POM path; it wins over BaseDirectory/PomFileName.
	PomFile string
	// PomFileName is a POM file name relative to the working directory.
	PomFileName string

	// Goals are joined with spaces and re-split with shell quoting rules.
	// This is the historical single-line form; quotes group words.
	Goals []string
	// Args are passed through as individual tokens after Goals.
	Args []string

	Profiles   []string
	Properties map[string]string

	// BatchMode runs the tool non-interactively (-B). When set, any configured
	// input stream is ignored and the process receives no stdin.
	BatchMode          bool
	Debug              bool
	Offline            bool
	UpdateSnapshots    UpdateSnapshotsPolicy
	Recursive          bool
	ShowErrors         bool
	NonPluginUpdates   bool
	ShowVersion        bool
	Quiet              bool
	NoTransferProgress bool

	ReactorFailureBehavior ReactorFailureBehavior
	Projects               []string
	AlsoMake               bool
	AlsoMakeDependents     bool
	ResumeFrom             string

	GlobalChecksumPolicy ChecksumPolicy

	// Builder is the reactor builder id passed with -b.
	Builder string
	// Threads is an opaque thread count spec such as "2.0C".
	Threads string

	UserSettingsFile     string
	GlobalSettingsFile   string
	ToolchainsFile       string
	GlobalToolchainsFile string

	// LocalRepositoryDirectory must name an existing directory when set.
	LocalRepositoryDirectory string

	JavaHome  string
	MavenOpts string
	// ShellEnvironmentInherited starts the process environment from the host's.
	ShellEnvironmentInherited bool
	// ShellEnvironments are applied last and win over every derived variable.
	ShellEnvironments map[string]string

	MavenHome       string
	MavenExecutable string

	// TimeoutInSeconds bounds the run; NoTimeout (or any value <= 0) disables it.
	TimeoutInSeconds int

	InputStream   io.Reader
	OutputHandler OutputHandler
	ErrorHandler  OutputHandler
}

// NewRequest returns a Request with the tool's defaults: recursive builds and
// an inherited shell environment.
func NewRequest() *Request {
	return &Request{
		Recursive:                 true,
		ShellEnvironmentInherited: true,
		TimeoutInSeconds:          NoTimeout,
	}
}

// Clone returns a deep copy of the request's slices and maps. Streams and
// handlers are shared.
func (r *Request) Clone() *Request {
	c := *r
	c.Goals = slices.Clone(r.Goals)
	c.Args = slices.Clone(r.Args)
	c.Profiles = slices.Clone(r.Profiles)
	c.Projects = slices.Clone(r.Projects)
	c.Properties = maps.Clone(r.Properties)
	c.ShellEnvironments = maps.Clone(r.ShellEnvironments)
	return &c
}

// LocalRepositoryOr returns the request's local repository, or def when unset.
func (r *Request) LocalRepositoryOr(def string) string {
	if r.LocalRepositoryDirectory != "" {
		return r.LocalRepositoryDirectory
	}
	return def
}

// InputStreamOr returns the request's input stream, or def when unset.
func (r *Request) InputStreamOr(def io.Reader) io.Reader {
	if r.InputStream != nil {
		return r.InputStream
	}
	return def
}

// OutputHandlerOr returns the request's output handler, or def when unset.
func (r *Request) OutputHandlerOr(def OutputHandler) OutputHandler {
	if r.OutputHandler != nil {
		return r.OutputHandler
	}
	return def
}

// ErrorHandlerOr returns the request's error handler, or def when unset.
func (r *Request) ErrorHandlerOr(def OutputHandler) OutputHandler {
	if r.ErrorHandler != nil {
		return r.ErrorHandler
	}
	return def
}
