// SPDX-License-Identifier: MPL-2.0

// Package logging builds the leveled loggers consumed by the invoker.
//
// Every component logs through a *slog.Logger. The CLI backs it with a
// charmbracelet/log handler; library callers can pass any slog handler or
// use Discard. Diagnostics are best effort and never affect control flow.
package logging
