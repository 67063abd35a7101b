package kernels

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// SplitTrainingOp is the operator type of the training split kernel.
const SplitTrainingOp = "SplitTraining"

// splitTraining is the inverse of the training concat: it splits its first
// input along the configured axis into one output per length. Lengths come
// from the second input (the per_input_length vector a ConcatTraining call
// emitted) or, absent that, from the split attribute. Slicing the concat
// output back with these lengths reproduces every original input exactly.
type splitTraining struct {
	base      ConcatBase
	attrSplit []int64
	exec      Executor
}

// NewSplitTraining builds a SplitTraining kernel bound to a device copy
// capability.
func NewSplitTraining(info op.KernelInfo, exec Executor) (op.Kernel, error) {
	base, err := NewConcatBase(info)
	if err != nil {
		return nil, err
	}
	return &splitTraining{
		base:      base,
		attrSplit: op.GetAttrInts(info.Node, "split"),
		exec:      exec,
	}, nil
}

func (k *splitTraining) lengths(ctx *op.Context) ([]int, error) {
	var raw []int64
	switch {
	case ctx.InputCount() >= 2 && ctx.Input(1) != nil:
		lens := ctx.Input(1)
		if lens.DType() != tensor.Int64 {
			return nil, fmt.Errorf("%w: per_input_length has dtype %s, expected int64", op.ErrShapeMismatch, lens.DType())
		}
		if len(lens.Shape()) != 1 {
			return nil, fmt.Errorf("%w: per_input_length has rank %d, expected 1", op.ErrShapeMismatch, len(lens.Shape()))
		}
		raw = lens.AsInt64()
	case len(k.attrSplit) > 0:
		raw = k.attrSplit
	default:
		return nil, fmt.Errorf("%w: split requires per_input_length input or split attribute", op.ErrShapeMismatch)
	}

	lengths := make([]int, len(raw))
	for i, v := range raw {
		lengths[i] = int(v)
	}
	return lengths, nil
}

func (k *splitTraining) prepare(ctx *op.Context) (Plan, error) {
	if ctx.InputCount() < 1 {
		return Plan{}, fmt.Errorf("%w: split requires a data input", op.ErrShapeMismatch)
	}
	lengths, err := k.lengths(ctx)
	if err != nil {
		return Plan{}, err
	}
	return k.base.PrepareSplit(ctx.Input(0), lengths)
}

func (k *splitTraining) Validate(ctx *op.Context) error {
	_, err := k.prepare(ctx)
	return err
}

func (k *splitTraining) Compute(ctx *op.Context) error {
	plan, err := k.prepare(ctx)
	if err != nil {
		return err
	}
	if ctx.OutputCount() < len(plan.AxisSizes) {
		return fmt.Errorf("%w: split into %d parts but only %d output slots declared",
			op.ErrShapeMismatch, len(plan.AxisSizes), ctx.OutputCount())
	}

	// Allocate every output before enqueueing anything: either all parts are
	// committed or the call fails with nothing on the stream.
	outputs := make([]*tensor.RawTensor, len(plan.AxisSizes))
	for i, n := range plan.AxisSizes {
		outShape := plan.OutShape.Clone()
		outShape[plan.Axis] = n
		out, aerr := ctx.AllocateOutput(i, outShape, plan.DType)
		if aerr != nil {
			return aerr
		}
		outputs[i] = out
	}

	if ctx.Input(0).ByteSize() == 0 {
		return nil
	}

	klog.V(4).Infof("split: axis %d into %v", plan.Axis, plan.AxisSizes)
	return k.exec.Split(ctx.Stream(), ctx.Input(0), outputs, plan)
}
