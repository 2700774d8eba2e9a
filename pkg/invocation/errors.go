// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Execution error kinds.
const (
	KindLaunch   ExecutionKind = "launch"
	KindTimeout  ExecutionKind = "timeout"
	KindCanceled ExecutionKind = "canceled"
	KindStream   ExecutionKind = "stream"
)

var (
	// ErrConfiguration matches every error raised while compiling a command line.
	ErrConfiguration = errors.New("invalid invocation configuration")

	// ErrHomeNotFound is returned when no usable Maven home could be resolved.
	ErrHomeNotFound = errors.New("maven home not found")
	// ErrExecutableNotFound is returned when no executable file exists in the searched locations.
	ErrExecutableNotFound = errors.New("maven executable not found")
	// ErrLocalRepositoryNotDirectory is returned when the local repository override is not a directory.
	ErrLocalRepositoryNotDirectory = errors.New("local repository is not a directory")
	// ErrInvalidGoals is returned when the joined goal line cannot be split into arguments.
	ErrInvalidGoals = errors.New("invalid goal line")
	// ErrLoggerRequired is returned when a compiler is used without a logger.
	ErrLoggerRequired = errors.New("a logger instance is required")

	// ErrLaunch matches failures to start the process.
	ErrLaunch = errors.New("process could not be launched")
	// ErrTimeout matches processes terminated by the watchdog.
	ErrTimeout = errors.New("process timed out")
	// ErrCanceled matches processes terminated because the caller's context ended.
	ErrCanceled = errors.New("process canceled")
	// ErrStream matches I/O failures while pumping process streams.
	ErrStream = errors.New("process stream failed")
)

type (
	// ConfigurationError reports an invalid or unresolvable invocation setup.
	// It is returned before any process is launched.
	ConfigurationError struct {
		// Op describes what was being configured (e.g., "resolve maven executable").
		Op string
		// Path is the offending path, if any.
		Path string
		// Searched lists the locations probed during executable discovery.
		Searched []string
		// Err is the specific cause, usually one of the configuration sentinels.
		Err error
	}

	// ExecutionKind classifies an ExecutionError.
	ExecutionKind string

	// ExecutionError reports that a process could not be run to completion.
	ExecutionError struct {
		Kind ExecutionKind
		// Timeout is the configured limit for KindTimeout errors.
		Timeout time.Duration
		Err     error
	}
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Op)
	if e.Path != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Path)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	if len(e.Searched) > 0 {
		msg.WriteString(" (searched: ")
		msg.WriteString(strings.Join(e.Searched, ", "))
		msg.WriteString(")")
	}
	return msg.String()
}

// Unwrap returns the specific cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError creates a ConfigurationError for op caused by err.
func NewConfigurationError(op, path string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	var head string
	switch e.Kind {
	case KindTimeout:
		head = fmt.Sprintf("process timed out after %s and was terminated", e.Timeout)
	case KindCanceled:
		head = "process canceled and was terminated"
	case KindLaunch:
		head = "failed to launch process"
	case KindStream:
		head = "failed to read process output"
	default:
		head = "process execution failed"
	}
	if e.Err != nil {
		return head + ": " + e.Err.Error()
	}
	return head
}

// Unwrap returns the underlying cause.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *ExecutionError) Is(target error) bool {
	switch target {
	case ErrLaunch:
		return e.Kind == KindLaunch
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrCanceled:
		return e.Kind == KindCanceled
	case ErrStream:
		return e.Kind == KindStream
	default:
		return false
	}
}

// IsTimeout reports whether err is an execution timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }
