// Package webgpu implements the GPU backend on WebGPU, using go-webgpu
// (github.com/go-webgpu/webgpu) for zero-CGO bindings. Concat is pure data
// movement, so the kernels here are buffer-to-buffer copy commands rather
// than compute shaders.
package webgpu

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/kernels"
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/stream"
	"github.com/strand-ml/strand/internal/tensor"
)

// Backend drives a WebGPU device. All queue work goes through a Stream's
// worker goroutine, so the wgpu handles see single-threaded use per stream.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	pool *BufferPool
}

// New creates a WebGPU backend. Returns an error if WebGPU is unavailable or
// initialization fails.
func New() (backend *Backend, err error) {
	// wgpu panics when the native library is missing; surface that as an
	// error so callers can fall back to CPU.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	b := &Backend{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}
	b.pool = NewBufferPool(device)

	klog.V(2).Info("webgpu backend initialized")
	return b, nil
}

// IsAvailable reports whether a WebGPU device can be acquired.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Allocate returns a zeroed tensor tagged for this device. The host-side
// buffer is the staging mirror; during an op the data lives in GPU buffers.
func (b *Backend) Allocate(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return tensor.NewRaw(shape, dtype, tensor.WebGPU)
}

// NewStream creates a fresh device stream for one execution context.
func (b *Backend) NewStream() *stream.Stream {
	return stream.New(tensor.WebGPU)
}

// RegisterKernels contributes this backend's kernels to the registry.
func (b *Backend) RegisterKernels(r *op.Registry) {
	kernels.Register(r, tensor.WebGPU, &executor{backend: b})
}

// Release frees the pooled buffers and the wgpu handles.
func (b *Backend) Release() {
	if b.pool != nil {
		b.pool.Clear()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
