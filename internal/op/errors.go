package op

import "errors"

// Error classes surfaced to the host. Kernels wrap these with call context;
// callers test them with errors.Is.
var (
	// ErrInvalidAxis reports a configuration error: the concatenation (or
	// split) axis is missing or outside the valid range for the input rank.
	ErrInvalidAxis = errors.New("axis out of range")

	// ErrShapeMismatch reports a per-call validation error: inputs disagree
	// on rank, dtype, or a non-axis dimension. Raised before any device work
	// is enqueued.
	ErrShapeMismatch = errors.New("input shape mismatch")

	// ErrAllocation reports a resource error: the output tensor could not be
	// allocated.
	ErrAllocation = errors.New("output allocation failed")

	// ErrKernelNotFound reports a registry lookup miss: no kernel is
	// registered for the requested op type on the requested device.
	ErrKernelNotFound = errors.New("no kernel registered")
)
