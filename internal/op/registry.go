package op

import (
	"fmt"
	"sort"
	"sync"

	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/tensor"
)

// KernelBuilder constructs a kernel from its configuration record.
// Builders run once, when the host assembles its execution plan; the kernel
// they return is then invoked once per step.
type KernelBuilder func(info KernelInfo) (Kernel, error)

type registryKey struct {
	opType string
	device tensor.Device
}

// Registry maps (op type, device) pairs to kernel builders. It is the
// in-process extension point backends plug their kernels into.
type Registry struct {
	mu       sync.RWMutex
	builders map[registryKey]KernelBuilder
}

// NewRegistry creates an empty registry. Backends contribute their kernels
// via RegisterKernels on the backend type.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[registryKey]KernelBuilder)}
}

// Register adds a kernel builder for an op type on a device. A later
// registration for the same pair replaces the earlier one.
func (r *Registry) Register(opType string, device tensor.Device, builder KernelBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	klog.V(2).Infof("registering kernel %s on %s", opType, device)
	r.builders[registryKey{opType, device}] = builder
}

// Build constructs the kernel for a node on the given device.
func (r *Registry) Build(node *Node, device tensor.Device) (Kernel, error) {
	r.mu.RLock()
	builder, ok := r.builders[registryKey{node.OpType, device}]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: op %s on device %s", ErrKernelNotFound, node.OpType, device)
	}
	return builder(KernelInfo{Node: node, Device: device})
}

// Run builds the kernel for a node and computes it against the context.
// Convenience for hosts that do not cache kernels between steps.
func (r *Registry) Run(ctx *Context, node *Node, device tensor.Device) error {
	kernel, err := r.Build(node, device)
	if err != nil {
		return err
	}
	klog.V(4).Infof("dispatching %s (%s) on %s", node.OpType, node.Name, device)
	return kernel.Compute(ctx)
}

// SupportedOps returns the registered (op type, device) pairs, sorted for
// stable output.
func (r *Registry) SupportedOps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]string, 0, len(r.builders))
	for key := range r.builders {
		ops = append(ops, fmt.Sprintf("%s@%s", key.opType, key.device))
	}
	sort.Strings(ops)
	return ops
}
