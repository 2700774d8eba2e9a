// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that build throwaway Maven
// installations and project directories, failing the test on setup errors
// so test bodies stay focused on behavior.
package testutil
