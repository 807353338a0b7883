package orderpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for generation failure conditions.
var (
	// ErrCanvasUnavailable means the drawing primitive could not be
	// constructed. This is a hard dependency-missing condition; nothing
	// is generated and the call is not retried.
	ErrCanvasUnavailable = errors.New("orderpdf: drawing canvas is not available")

	ErrNilOrder    = errors.New("orderpdf: order is nil")
	ErrNilCustomer = errors.New("orderpdf: customer is nil")
)

// RenderError wraps an underlying error with the layout step that
// produced it.
type RenderError struct {
	Step string // e.g. "items-table", "output"
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("orderpdf.%s: %v", e.Step, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newRenderError(step string, err error) *RenderError {
	return &RenderError{Step: step, Err: err}
}
