// SPDX-License-Identifier: MPL-2.0

// Package cmdline compiles an invocation.Request into a concrete Command:
// the executable, the ordered argument vector, the process environment and
// the working directory.
//
// Compilation is deterministic: the same request and compiler produce
// identical commands. Its only side effects are filesystem reads used to
// canonicalize paths and probe for executables. Argument order is part of
// the contract and mirrors the tool's usual flag grouping:
//
//	flags, reactor behavior, local repository, POM location,
//	settings and toolchains, properties, profiles, goals, threads
package cmdline
