// Package mcpface exposes the index_root, search, preview, and forget
// operations as MCP tools so AI clients can drive the index directly.
package mcpface

import (
	"context"
	"errors"
	"fmt"

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// Standard JSON-RPC error codes, reused for tool-call failures.
const (
	errCodeInvalidParams = -32602
	errCodeInternalError = -32603
	errCodeTimeout       = -32001
)

// ToolError is the error shape surfaced to MCP clients.
type ToolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

// mapError converts an internal error to a ToolError, preserving the
// ferrors.SearchError's message when present.
func mapError(err error) *ToolError {
	if err == nil {
		return nil
	}

	var se *ferrors.SearchError
	if errors.As(err, &se) {
		switch se.Kind {
		case ferrors.KindInput:
			return &ToolError{Code: errCodeInvalidParams, Message: se.Message}
		default:
			return &ToolError{Code: errCodeInternalError, Message: se.Message}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ToolError{Code: errCodeTimeout, Message: "request timed out"}
	}

	return &ToolError{Code: errCodeInternalError, Message: err.Error()}
}

func newInvalidParamsError(msg string) *ToolError {
	return &ToolError{Code: errCodeInvalidParams, Message: msg}
}
