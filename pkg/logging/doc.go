// Package logging provides structured logging utilities for cuda-setup.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across commands. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cuda-setup", "v1.0.0")
//
//	    slog.Info("checking driver", "path", path)
//	    slog.Error("repair failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cuda-setup", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug cuda-setup check
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format so that stdout stays clean
// for serialized command output:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "repair applied",
//	    "module": "cuda-setup",
//	    "version": "v1.0.0",
//	    "target": "/mnt/c/Windows/System32/nvidia-smi.exe"
//	}
package logging
