// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "nvidia-smi probe timed out",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "command": "nvidia-smi",
//	        "timeout": timeout,
//	    },
//	)
package errors
