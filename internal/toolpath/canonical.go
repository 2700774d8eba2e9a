// SPDX-License-Identifier: MPL-2.0

package toolpath

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Canonical returns the absolute path of p with every symlink resolved.
// It fails when p does not exist.
func Canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	return resolved, nil
}

// CanonicalOrAbs canonicalizes p, falling back to its absolute form (or p
// itself) when that is not possible. Failures are logged at debug level and
// never escalate.
func CanonicalOrAbs(ctx context.Context, logger *slog.Logger, what, p string) string {
	resolved, err := Canonical(p)
	if err == nil {
		return resolved
	}

	logger.DebugContext(ctx, "failed to canonicalize path, using as-is", "what", what, "path", p, "error", err)

	if abs, absErr := filepath.Abs(p); absErr == nil {
		return abs
	}
	return p
}
