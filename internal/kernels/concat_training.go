package kernels

import (
	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// ConcatTrainingOp is the operator type of the training concat kernel.
const ConcatTrainingOp = "ConcatTraining"

// concatTraining concatenates N inputs along the configured axis. The
// training variant additionally emits per_input_length, an int64 vector of
// each input's axis extent, so the gradient op can split without re-deriving
// shapes. Concatenation is pure data movement: no arithmetic, byte-for-byte
// copies per element.
type concatTraining struct {
	base ConcatBase
	exec Executor
}

// NewConcatTraining builds a ConcatTraining kernel bound to a device copy
// capability.
func NewConcatTraining(info op.KernelInfo, exec Executor) (op.Kernel, error) {
	base, err := NewConcatBase(info)
	if err != nil {
		return nil, err
	}
	return &concatTraining{base: base, exec: exec}, nil
}

func (k *concatTraining) Validate(ctx *op.Context) error {
	_, err := k.base.Prepare(ctx.Inputs())
	return err
}

func (k *concatTraining) Compute(ctx *op.Context) error {
	plan, err := k.base.Prepare(ctx.Inputs())
	if err != nil {
		return err
	}

	out, err := ctx.AllocateOutput(0, plan.OutShape, plan.DType)
	if err != nil {
		return err
	}

	// Optional second output: per-input axis extents. Shape metadata, filled
	// host-side before any device work.
	if ctx.OutputCount() > 1 {
		lengths, lerr := ctx.AllocateOutput(1, tensor.Shape{len(plan.AxisSizes)}, tensor.Int64)
		if lerr != nil {
			return lerr
		}
		dst := lengths.AsInt64()
		for i, n := range plan.AxisSizes {
			dst[i] = int64(n)
		}
	}

	if out.ByteSize() == 0 {
		// Nothing to move; the output is already committed.
		return nil
	}

	klog.V(4).Infof("concat: %d inputs, axis %d, out %v", ctx.InputCount(), plan.Axis, plan.OutShape)
	return k.exec.Concat(ctx.Stream(), ctx.Inputs(), out, plan)
}
