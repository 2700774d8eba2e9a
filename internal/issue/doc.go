// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries an operation, a resource and remediation hints.
// The issue catalog holds Markdown guidance for the failures users hit most
// often (missing Maven installation, bad local repository, timeouts), rendered
// for the terminal with glamour.
package issue
