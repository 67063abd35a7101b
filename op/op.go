// Copyright 2025 The Strand Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package op provides the public operator-kernel API of the strand runtime:
// the Kernel contract, the per-call execution Context, the Node/Attribute
// configuration records and the kernel Registry.
//
// A backend contributes kernels to a Registry at plan-build time; the host
// then constructs one Context per invocation and dispatches through the
// registry. Kernels validate before enqueueing device work and return
// without waiting for device completion; the host observes completion with
// Stream.Synchronize.
package op

import (
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// Kernel is one device-specific operator implementation.
type Kernel = op.Kernel

// KernelInfo is the configuration record a kernel is built from.
type KernelInfo = op.KernelInfo

// KernelBuilder constructs a kernel from its configuration record.
type KernelBuilder = op.KernelBuilder

// Context is the per-call execution bundle.
type Context = op.Context

// Allocator allocates output tensors for a device.
type Allocator = op.Allocator

// Stream is an ordered asynchronous queue of device work.
type Stream = op.Stream

// Node describes one operator invocation.
type Node = op.Node

// Attribute is one named attribute of a node.
type Attribute = op.Attribute

// Registry maps (op type, device) pairs to kernel builders.
type Registry = op.Registry

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return op.NewRegistry()
}

// NewContext creates an execution context for one kernel invocation.
func NewContext(inputs []*tensor.RawTensor, numOutputs int, alloc Allocator, st Stream) *Context {
	return op.NewContext(inputs, numOutputs, alloc, st)
}

// GetAttrInt returns an integer attribute and whether it was present.
func GetAttrInt(node *Node, name string) (int64, bool) {
	return op.GetAttrInt(node, name)
}

// GetAttrInts returns an integer array attribute, or nil when absent.
func GetAttrInts(node *Node, name string) []int64 {
	return op.GetAttrInts(node, name)
}

// Error classes surfaced by kernels and the registry.
var (
	ErrInvalidAxis    = op.ErrInvalidAxis
	ErrShapeMismatch  = op.ErrShapeMismatch
	ErrAllocation     = op.ErrAllocation
	ErrKernelNotFound = op.ErrKernelNotFound
)
