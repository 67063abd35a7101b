package kernels

import (
	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// Register wires the training kernels for one device onto the registry,
// binding them to that device's copy capability.
func Register(r *op.Registry, device tensor.Device, exec Executor) {
	r.Register(ConcatTrainingOp, device, func(info op.KernelInfo) (op.Kernel, error) {
		return NewConcatTraining(info, exec)
	})
	r.Register(SplitTrainingOp, device, func(info op.KernelInfo) (op.Kernel, error) {
		return NewSplitTraining(info, exec)
	})
}
