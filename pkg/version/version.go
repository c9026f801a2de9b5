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

// Package version parses and compares dotted numeric version strings as used
// by NVIDIA driver releases ("566.03") and CUDA toolkits ("12.9").
//
// Comparison is segment-wise numeric, left to right, with shorter versions
// treated as having implicit trailing zero segments: "12.9" == "12.9.0" and
// "12.9" < "12.9.1". Malformed versions are an error, never coerced to a
// default; an ambiguous parse is a defect in the input, not a normal case.
package version

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/cuda-setup/pkg/errors"
)

// Sentinel errors for version parsing failures.
var (
	ErrEmptyVersion      = stderrors.New("version string is empty")
	ErrTooManyComponents = stderrors.New("version has more than 3 components")
	ErrNonNumeric        = stderrors.New("version component is not numeric")
	ErrNegativeComponent = stderrors.New("version component cannot be negative")
)

// Version represents a dotted numeric version with up to three components.
// Unparsed trailing components are zero, which gives the implicit-trailing-zero
// comparison semantics directly. Precision records how many components were
// present in the source string (for String round-tripping only, never for
// comparison). Extras preserves build metadata after '-' or '+'.
type Version struct {
	Major int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components the source string had (1-3).
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores additional version metadata like "-rc1".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String returns the string representation of the Version respecting its
// precision. Extras are not included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("%d", v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParseVersion parses a version string into a Version struct.
// Supported formats: "528", "528.33", "12.9.1", "v12.9", "12.9-rc1".
// The "v" prefix is optional and stripped if present; metadata after '-' or
// '+' is preserved in Extras. Returns an error for empty strings, non-numeric
// or negative components, and more than three components.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	// Split off extras: the first '-' or '+' directly following a digit.
	mainPart := s
	for i, ch := range s {
		if (ch == '-' || ch == '+') && i > 0 {
			prev := s[i-1]
			if prev >= '0' && prev <= '9' {
				mainPart = s[:i]
				v.Extras = s[i:]
				break
			}
		}
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests; for runtime data, use
// ParseVersion and handle errors explicitly.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Compare returns an integer comparing two versions:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Missing components compare as zero, so "12.9" equals "12.9.0".
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return sign(v.Major - other.Major)
	}
	if v.Minor != other.Minor {
		return sign(v.Minor - other.Minor)
	}
	if v.Patch != other.Patch {
		return sign(v.Patch - other.Patch)
	}
	return 0
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// IsValid returns true if the version has valid values.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return false
	}
	return v.Precision >= 1 && v.Precision <= 3
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Compare parses both version strings and orders them.
// Malformed inputs fail with a VERSION_PARSE structured error.
func Compare(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeVersionParse,
			"invalid version string", err, map[string]any{"version": a})
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeVersionParse,
			"invalid version string", err, map[string]any{"version": b})
	}
	return va.Compare(vb), nil
}

// MeetsMinimum reports whether actual is equal to or newer than minimum.
// The boundary is inclusive: a version meets its own minimum.
func MeetsMinimum(actual, minimum string) (bool, error) {
	c, err := Compare(actual, minimum)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}
