// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Command is a compiled process launch.
type Command struct {
	// Executable is the path of the program to run.
	Executable string
	// Args are the arguments, one token each, excluding the executable.
	Args []string
	// Env is the complete process environment.
	Env map[string]string
	// Dir is the working directory.
	Dir string
}

// Environ returns Env as sorted "KEY=value" strings. The result is never nil,
// so an empty environment stays empty instead of inheriting the host's.
func (c *Command) Environ() []string {
	keys := slices.Sorted(maps.Keys(c.Env))
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}

// String renders the command line with shell quoting, for diagnostics only.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Executable))
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only strings that bash cannot represent (e.g., NUL bytes) end up here.
		return s
	}
	return q
}
