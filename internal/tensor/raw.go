package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where a tensor's data lives and which backend may
// operate on it.
type Device int

// Supported compute devices. CUDA, Vulkan and Metal are reserved names for
// backends that register kernels under them.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// buffer is a reference-counted byte buffer shared between tensor clones.
type buffer struct {
	data     []byte
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) addRef() { b.refCount.Add(1) }

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

// RawTensor is the runtime's tensor container: a device-tagged, row-major
// contiguous buffer with shape and element type. Kernels borrow RawTensors
// through the execution context; they never own them.
type RawTensor struct {
	buffer *buffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zeroed RawTensor with the given shape and type.
// Zero-size shapes are legal and get a zero-length buffer.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer: newBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides in elements.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's element type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice backing the tensor.
func (r *RawTensor) Data() []byte {
	return r.buffer.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	if r.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	if r.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	if r.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	if r.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements
	return unsafe.Slice((*int64)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.buffer.data
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	if r.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// IsUnique reports whether this tensor holds the only reference to its
// buffer, so in-place writes cannot be observed through another clone.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.refCount.Load() == 1
}

// Clone creates a shallow copy sharing the underlying buffer with reference
// counting. Cheap; the buffer is freed when the last clone is released.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Release decrements the buffer's reference count, freeing it at zero.
func (r *RawTensor) Release() {
	r.buffer.release()
}
