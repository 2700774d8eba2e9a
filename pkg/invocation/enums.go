// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"fmt"
	"strings"
)

// Snapshot update, reactor failure and checksum policy constants.
// The zero value of each type is the tool's own default and emits no flag.
const (
	UpdateSnapshotsDefault UpdateSnapshotsPolicy = ""
	UpdateSnapshotsAlways  UpdateSnapshotsPolicy = "always"
	UpdateSnapshotsNever   UpdateSnapshotsPolicy = "never"

	FailFast  ReactorFailureBehavior = ""
	FailAtEnd ReactorFailureBehavior = "fail-at-end"
	FailNever ReactorFailureBehavior = "fail-never"

	ChecksumPolicyUnset ChecksumPolicy = ""
	ChecksumPolicyFail  ChecksumPolicy = "fail"
	ChecksumPolicyWarn  ChecksumPolicy = "warn"
)

type (
	// UpdateSnapshotsPolicy is the tri-state snapshot update policy.
	UpdateSnapshotsPolicy string

	// ReactorFailureBehavior controls how a multi-module build reacts to a module failure.
	ReactorFailureBehavior string

	// ChecksumPolicy is the global artifact checksum policy.
	ChecksumPolicy string
)

// ParseUpdateSnapshotsPolicy parses "always", "never" or "default" (case-insensitive).
// The empty string is accepted as the default policy.
func ParseUpdateSnapshotsPolicy(s string) (UpdateSnapshotsPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return UpdateSnapshotsDefault, nil
	case string(UpdateSnapshotsAlways):
		return UpdateSnapshotsAlways, nil
	case string(UpdateSnapshotsNever):
		return UpdateSnapshotsNever, nil
	default:
		return UpdateSnapshotsDefault, fmt.Errorf("unknown update snapshots policy %q (expected always, never or default)", s)
	}
}

// String returns the policy name, "default" for the zero value.
func (p UpdateSnapshotsPolicy) String() string {
	if p == UpdateSnapshotsDefault {
		return "default"
	}
	return string(p)
}

// ParseReactorFailureBehavior parses "fail-fast", "fail-at-end" or "fail-never".
func ParseReactorFailureBehavior(s string) (ReactorFailureBehavior, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast":
		return FailFast, nil
	case string(FailAtEnd):
		return FailAtEnd, nil
	case string(FailNever):
		return FailNever, nil
	default:
		return FailFast, fmt.Errorf("unknown reactor failure behavior %q (expected fail-fast, fail-at-end or fail-never)", s)
	}
}

// ShortOption returns the flag (without leading dash) for the behavior.
// Fail-fast is the tool's default and has no flag.
func (b ReactorFailureBehavior) ShortOption() string {
	switch b {
	case FailAtEnd:
		return "fae"
	case FailNever:
		return "fn"
	case FailFast:
		return ""
	default:
		return ""
	}
}

// String returns the behavior name, "fail-fast" for the zero value.
func (b ReactorFailureBehavior) String() string {
	if b == FailFast {
		return "fail-fast"
	}
	return string(b)
}

// ParseChecksumPolicy parses "fail" or "warn"; the empty string leaves the policy unset.
func ParseChecksumPolicy(s string) (ChecksumPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ChecksumPolicyUnset, nil
	case string(ChecksumPolicyFail):
		return ChecksumPolicyFail, nil
	case string(ChecksumPolicyWarn):
		return ChecksumPolicyWarn, nil
	default:
		return ChecksumPolicyUnset, fmt.Errorf("unknown checksum policy %q (expected fail or warn)", s)
	}
}
