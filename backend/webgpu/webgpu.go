// Copyright 2025 The Strand Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU backend of the strand runtime, built on
// WebGPU via zero-CGO bindings. Kernel data movement runs as buffer-to-buffer
// copy commands on the device queue.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err) // no adapter; fall back to cpu.New()
//	}
//	defer gpu.Release()
//
//	registry := op.NewRegistry()
//	gpu.RegisterKernels(registry)
package webgpu

import (
	internalwebgpu "github.com/strand-ml/strand/internal/backend/webgpu"
	"github.com/strand-ml/strand/op"
)

// Backend is the WebGPU backend.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend satisfies the allocator contract.
var _ op.Allocator = (*Backend)(nil)

// New creates a WebGPU backend, or returns an error when no device is
// available.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU device can be acquired.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
