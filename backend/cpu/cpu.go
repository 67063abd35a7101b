// Copyright 2025 The Strand Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host-memory backend of the strand runtime.
package cpu

import (
	internalcpu "github.com/strand-ml/strand/internal/backend/cpu"
	"github.com/strand-ml/strand/op"
)

// Backend is the CPU backend: host allocator, stream factory and the copy
// executors behind the concat kernels.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend satisfies the allocator contract.
var _ op.Allocator = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	registry := op.NewRegistry()
//	backend.RegisterKernels(registry)
func New() *Backend {
	return internalcpu.New()
}
