package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledBuffers caps how many idle buffers the pool retains.
const maxPooledBuffers = 64

type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool reuses GPU buffers across kernel invocations to reduce
// allocation overhead. A pooled buffer satisfies a request when it is at
// least as large and carries at least the requested usage bits.
type BufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	idle []*pooledBuffer

	hits   uint64
	misses uint64
}

// NewBufferPool creates a buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{device: device}
}

// Acquire returns a pooled buffer matching size and usage, or creates one.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	for i, pb := range p.idle {
		if pb.size >= size && pb.usage&usage == usage {
			buffer := pb.buffer
			p.idle = append(p.idle[:i], p.idle[i+1:]...)
			p.hits++
			p.mu.Unlock()
			return buffer
		}
	}
	p.misses++
	p.mu.Unlock()

	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool, or frees it when the pool is full.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.idle) >= maxPooledBuffers {
		buffer.Release()
		return
	}
	p.idle = append(p.idle, &pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear frees every pooled buffer.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pb := range p.idle {
		pb.buffer.Release()
	}
	p.idle = p.idle[:0]
}

// Stats reports pool hit/miss counts and the idle buffer count.
func (p *BufferPool) Stats() (hits, misses uint64, idle int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses, len(p.idle)
}
