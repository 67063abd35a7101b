// Copyright 2025 The Strand Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types of the strand runtime:
// RawTensor, Shape, DataType and Device. Tensors are row-major contiguous;
// kernels borrow them through an execution context and never own them.
package tensor

import (
	"github.com/strand-ml/strand/internal/tensor"
)

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Element type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device identifies where a tensor's data lives.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the runtime's tensor container.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
