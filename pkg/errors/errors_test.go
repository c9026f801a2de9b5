package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeHostBinaryMissing, "nvidia-smi.exe not found"),
			want: "[HOST_BINARY_MISSING] nvidia-smi.exe not found",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeRepair, "failed to create symlink", errors.New("permission denied")),
			want: "[REPAIR] failed to create symlink: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := errors.New("exit status 127")
	err := Wrap(ErrCodeExecution, "command failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestStructuredError_As(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeVersionParse, "bad version"))

	var se *StructuredError
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find the StructuredError through wrapping")
	}
	if se.Code != ErrCodeVersionParse {
		t.Errorf("Code = %q, want %q", se.Code, ErrCodeVersionParse)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), ""},
		{"structured", New(ErrCodeQuery, "query failed"), ErrCodeQuery},
		{"wrapped structured", fmt.Errorf("ctx: %w", New(ErrCodeUnsafePath, "escape")), ErrCodeUnsafePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := Wrap(ErrCodeTimeout, "probe timed out", errors.New("signal: killed"))

	if !HasCode(err, ErrCodeTimeout) {
		t.Error("HasCode should match the carried code")
	}
	if HasCode(err, ErrCodeRepair) {
		t.Error("HasCode should not match a different code")
	}
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeExecution, "spawn failed", map[string]any{
		"command": "nvidia-smi",
	})

	if err.Context["command"] != "nvidia-smi" {
		t.Errorf("Context[command] = %v, want nvidia-smi", err.Context["command"])
	}
}
