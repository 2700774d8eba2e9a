// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS names, the launcher suffixes probed when looking for
// an executable on Windows, and detection of application sandboxes whose
// processes must be spawned on the host.
package platform
