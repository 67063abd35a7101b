package op

import (
	"fmt"

	"github.com/strand-ml/strand/internal/tensor"
)

// Kernel is one device-specific operator implementation. Validate checks the
// per-call preconditions without touching the device; Compute issues the
// device work. A kernel holds only configuration parsed at construction, so
// one instance may serve any number of concurrent calls as long as each call
// brings its own Context.
type Kernel interface {
	// Validate reports configuration and shape errors for the call.
	// It must not enqueue device work.
	Validate(ctx *Context) error

	// Compute validates, commits the outputs and enqueues the device work on
	// the context's stream. It returns without waiting for device completion.
	Compute(ctx *Context) error
}

// Allocator allocates output tensors for a device.
type Allocator interface {
	Allocate(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error)
}

// Stream is an ordered asynchronous queue of device work. Items execute in
// FIFO order relative to each other; Enqueue returns without waiting and
// Synchronize blocks until everything previously enqueued has run.
type Stream interface {
	Enqueue(work func() error) error
	Synchronize() error
	Device() tensor.Device
}

// KernelInfo is the configuration record a kernel is built from: the node
// (attributes included) plus the device it was selected for.
type KernelInfo struct {
	Node   *Node
	Device tensor.Device
}

// Context is the per-call execution bundle: borrowed input tensors, output
// slots, the device allocator and the stream to enqueue work on.
type Context struct {
	inputs  []*tensor.RawTensor
	outputs []*tensor.RawTensor
	alloc   Allocator
	stream  Stream
}

// NewContext creates an execution context for one kernel invocation.
// numOutputs is the number of output slots the node declares; optional
// outputs the caller does not want are simply not declared.
func NewContext(inputs []*tensor.RawTensor, numOutputs int, alloc Allocator, st Stream) *Context {
	return &Context{
		inputs:  inputs,
		outputs: make([]*tensor.RawTensor, numOutputs),
		alloc:   alloc,
		stream:  st,
	}
}

// InputCount returns the number of input tensors.
func (c *Context) InputCount() int {
	return len(c.inputs)
}

// Input returns the i-th input tensor, or nil when i is out of range. The
// tensor is borrowed: the kernel must not retain it past the call.
func (c *Context) Input(i int) *tensor.RawTensor {
	if i < 0 || i >= len(c.inputs) {
		return nil
	}
	return c.inputs[i]
}

// Inputs returns all input tensors.
func (c *Context) Inputs() []*tensor.RawTensor {
	return c.inputs
}

// OutputCount returns the number of declared output slots.
func (c *Context) OutputCount() int {
	return len(c.outputs)
}

// Output returns the i-th output tensor, or nil if not yet allocated or i is
// out of range.
func (c *Context) Output(i int) *tensor.RawTensor {
	if i < 0 || i >= len(c.outputs) {
		return nil
	}
	return c.outputs[i]
}

// AllocateOutput allocates the i-th output through the context's allocator
// and commits it to the slot. On failure nothing is committed and the error
// wraps ErrAllocation, or ErrShapeMismatch when the node declared no such
// output slot.
func (c *Context) AllocateOutput(i int, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if i < 0 || i >= len(c.outputs) {
		return nil, fmt.Errorf("%w: output slot %d out of range (%d declared)", ErrShapeMismatch, i, len(c.outputs))
	}
	out, err := c.alloc.Allocate(shape, dtype)
	if err != nil {
		return nil, fmt.Errorf("%w: output %d shape %v: %v", ErrAllocation, i, shape, err)
	}
	c.outputs[i] = out
	return out, nil
}

// Allocator returns the device allocator for this call.
func (c *Context) Allocator() Allocator {
	return c.alloc
}

// Stream returns the device stream for this call.
func (c *Context) Stream() Stream {
	return c.stream
}
