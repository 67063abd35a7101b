// Package cpu implements the host-memory backend: allocator, stream and the
// copy executors behind the concat kernels.
package cpu

import (
	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/stream"
	"github.com/strand-ml/strand/internal/tensor"
)

// CPUBackend owns no state beyond its device tag; every call gets its own
// stream, so concurrent execution contexts are safe.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Allocate returns a zeroed host tensor.
func (cpu *CPUBackend) Allocate(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return tensor.NewRaw(shape, dtype, cpu.device)
}

// NewStream creates a fresh device stream for one execution context.
func (cpu *CPUBackend) NewStream() *stream.Stream {
	return stream.New(cpu.device)
}

// RegisterKernels contributes this backend's kernels to the registry.
func (cpu *CPUBackend) RegisterKernels(r *op.Registry) {
	kernels.Register(r, cpu.device, executor{})
}
