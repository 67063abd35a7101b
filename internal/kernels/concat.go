// Package kernels implements the operator kernels shipped with the strand
// runtime. Each kernel is a composition of a configuration value parsed once
// at construction and a per-device copy capability selected at registration.
package kernels

import (
	"fmt"

	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

// Plan is the precomputed geometry for a concatenation (or its inverse) over
// row-major contiguous tensors. Along axis a, the concatenated region repeats
// Outer times; within each repeat, input i contributes one contiguous run of
// RunBytes[i] bytes at offset DstOffset(i) into a DstPitch-byte output row.
type Plan struct {
	OutShape  tensor.Shape    // concatenated shape
	DType     tensor.DataType // common element type
	Axis      int             // normalized concat axis
	Outer     int             // repeats of the concat region
	AxisSizes []int           // per-input extent along Axis
	RunBytes  []int           // per-input contiguous bytes per repeat
	DstPitch  int             // concatenated bytes per repeat
}

// DstOffset returns the byte offset of input i's run within one output row.
func (p *Plan) DstOffset(i int) int {
	off := 0
	for k := 0; k < i; k++ {
		off += p.RunBytes[k]
	}
	return off
}

// Executor is the device copy capability behind the concat kernels. Both
// operations enqueue their data movement on the stream and return without
// waiting for device completion.
type Executor interface {
	// Concat copies every input's runs into the output per the plan.
	Concat(st op.Stream, inputs []*tensor.RawTensor, output *tensor.RawTensor, plan Plan) error

	// Split is the inverse: it scatters the concatenated input's runs into
	// one output per plan entry.
	Split(st op.Stream, input *tensor.RawTensor, outputs []*tensor.RawTensor, plan Plan) error
}

// ConcatBase holds the attributes of a concatenation, parsed once at kernel
// construction and immutable afterwards.
type ConcatBase struct {
	axis int
}

// NewConcatBase parses the concat attributes from the kernel configuration.
// The axis attribute is required.
func NewConcatBase(info op.KernelInfo) (ConcatBase, error) {
	axis, ok := op.GetAttrInt(info.Node, "axis")
	if !ok {
		return ConcatBase{}, fmt.Errorf("%w: %s requires an axis attribute", op.ErrInvalidAxis, info.Node.OpType)
	}
	return ConcatBase{axis: int(axis)}, nil
}

// Axis returns the configured (possibly negative) axis.
func (b ConcatBase) Axis() int {
	return b.axis
}

// Prepare validates the inputs against the concat preconditions and computes
// the copy plan. It never touches the device: every error it returns is
// raised before any work is enqueued.
func (b ConcatBase) Prepare(inputs []*tensor.RawTensor) (Plan, error) {
	if len(inputs) == 0 {
		return Plan{}, fmt.Errorf("%w: concat requires at least one input", op.ErrShapeMismatch)
	}

	shape := inputs[0].Shape()
	dtype := inputs[0].DType()
	rank := len(shape)

	axis, err := shape.NormalizeAxis(b.axis)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %v", op.ErrInvalidAxis, err)
	}

	axisSizes := make([]int, len(inputs))
	total := 0
	for i, in := range inputs {
		inShape := in.Shape()
		if len(inShape) != rank {
			return Plan{}, fmt.Errorf("%w: input %d has rank %d, expected %d", op.ErrShapeMismatch, i, len(inShape), rank)
		}
		if in.DType() != dtype {
			return Plan{}, fmt.Errorf("%w: input %d has dtype %s, expected %s", op.ErrShapeMismatch, i, in.DType(), dtype)
		}
		for d := 0; d < rank; d++ {
			if d == axis {
				continue
			}
			if inShape[d] != shape[d] {
				return Plan{}, fmt.Errorf("%w: input %d dimension %d is %d, expected %d",
					op.ErrShapeMismatch, i, d, inShape[d], shape[d])
			}
		}
		axisSizes[i] = inShape[axis]
		total += inShape[axis]
	}

	outShape := shape.Clone()
	outShape[axis] = total

	return b.plan(outShape, dtype, axis, axisSizes), nil
}

// PrepareSplit validates a split of input along the configured axis into the
// given lengths and computes the inverse copy plan.
func (b ConcatBase) PrepareSplit(input *tensor.RawTensor, lengths []int) (Plan, error) {
	shape := input.Shape()

	axis, err := shape.NormalizeAxis(b.axis)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %v", op.ErrInvalidAxis, err)
	}

	total := 0
	for i, n := range lengths {
		if n < 0 {
			return Plan{}, fmt.Errorf("%w: split length %d is negative (%d)", op.ErrShapeMismatch, i, n)
		}
		total += n
	}
	if total != shape[axis] {
		return Plan{}, fmt.Errorf("%w: split lengths sum to %d, axis %d extent is %d",
			op.ErrShapeMismatch, total, axis, shape[axis])
	}

	return b.plan(shape.Clone(), input.DType(), axis, append([]int(nil), lengths...)), nil
}

func (b ConcatBase) plan(outShape tensor.Shape, dtype tensor.DataType, axis int, axisSizes []int) Plan {
	outer := 1
	for _, d := range outShape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range outShape[axis+1:] {
		inner *= d
	}

	elem := dtype.Size()
	runBytes := make([]int, len(axisSizes))
	pitch := 0
	for i, n := range axisSizes {
		runBytes[i] = n * inner * elem
		pitch += runBytes[i]
	}

	return Plan{
		OutShape:  outShape,
		DType:     dtype,
		Axis:      axis,
		Outer:     outer,
		AxisSizes: axisSizes,
		RunBytes:  runBytes,
		DstPitch:  pitch,
	}
}
