// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeExecution indicates an external process could not be spawned
	// or, in strict mode, exited non-zero.
	ErrCodeExecution ErrorCode = "EXECUTION"
	// ErrCodeTimeout indicates an external process exceeded its time limit
	// and was killed.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeHostBinaryMissing indicates the Windows-side nvidia-smi.exe
	// is not present, so neither repair nor queries are possible.
	ErrCodeHostBinaryMissing ErrorCode = "HOST_BINARY_MISSING"
	// ErrCodeRepair indicates a privileged filesystem operation failed
	// during symlink repair.
	ErrCodeRepair ErrorCode = "REPAIR"
	// ErrCodeUnsafePath indicates a computed path escaped its expected
	// parent directory and was rejected.
	ErrCodeUnsafePath ErrorCode = "UNSAFE_PATH"
	// ErrCodeVersionParse indicates a malformed version string.
	ErrCodeVersionParse ErrorCode = "VERSION_PARSE"
	// ErrCodeDriverUndetermined indicates nvidia-smi ran but its output
	// did not contain a usable driver version.
	ErrCodeDriverUndetermined ErrorCode = "DRIVER_UNDETERMINED"
	// ErrCodeQuery indicates a driver metadata query exited non-zero.
	ErrCodeQuery ErrorCode = "QUERY"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err, unwrapping as needed.
// Returns an empty code if err is nil or carries no StructuredError.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HasCode reports whether err (or any error it wraps) carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
