package kernels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-ml/strand/internal/op"
	"github.com/strand-ml/strand/internal/tensor"
)

func rawOf(t *testing.T, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	require.NoError(t, err)
	return raw
}

func baseWithAxis(t *testing.T, axis int64) ConcatBase {
	t.Helper()
	node := &op.Node{
		OpType:     ConcatTrainingOp,
		Attributes: []op.Attribute{{Name: "axis", I: axis}},
	}
	base, err := NewConcatBase(op.KernelInfo{Node: node, Device: tensor.CPU})
	require.NoError(t, err)
	return base
}

func TestPrepareGeometry(t *testing.T) {
	// [2,3,4] + [2,1,4] along axis 1, float32: outer repeats twice, runs are
	// 3*4*4 and 1*4*4 bytes, output rows are 64 bytes.
	base := baseWithAxis(t, 1)
	plan, err := base.Prepare([]*tensor.RawTensor{
		rawOf(t, tensor.Shape{2, 3, 4}, tensor.Float32),
		rawOf(t, tensor.Shape{2, 1, 4}, tensor.Float32),
	})
	require.NoError(t, err)

	require.True(t, plan.OutShape.Equal(tensor.Shape{2, 4, 4}))
	require.Equal(t, 1, plan.Axis)
	require.Equal(t, 2, plan.Outer)
	require.Equal(t, []int{3, 1}, plan.AxisSizes)
	require.Equal(t, []int{48, 16}, plan.RunBytes)
	require.Equal(t, 64, plan.DstPitch)
	require.Equal(t, 0, plan.DstOffset(0))
	require.Equal(t, 48, plan.DstOffset(1))
}

func TestPrepareLeadingAxis(t *testing.T) {
	// Axis 0 degenerates to one repeat with whole-tensor runs.
	base := baseWithAxis(t, 0)
	plan, err := base.Prepare([]*tensor.RawTensor{
		rawOf(t, tensor.Shape{2, 3}, tensor.Float64),
		rawOf(t, tensor.Shape{1, 3}, tensor.Float64),
	})
	require.NoError(t, err)

	require.Equal(t, 1, plan.Outer)
	require.Equal(t, []int{48, 24}, plan.RunBytes)
	require.Equal(t, 72, plan.DstPitch)
}

func TestPrepareSplitGeometry(t *testing.T) {
	base := baseWithAxis(t, 1)
	plan, err := base.PrepareSplit(rawOf(t, tensor.Shape{2, 8}, tensor.Float32), []int{3, 5})
	require.NoError(t, err)

	require.True(t, plan.OutShape.Equal(tensor.Shape{2, 8}))
	require.Equal(t, 2, plan.Outer)
	require.Equal(t, []int{12, 20}, plan.RunBytes)
	require.Equal(t, 32, plan.DstPitch)
}

func TestPrepareSplitDoesNotAliasLengths(t *testing.T) {
	base := baseWithAxis(t, 0)
	lengths := []int{2, 2}
	plan, err := base.PrepareSplit(rawOf(t, tensor.Shape{4}, tensor.Float32), lengths)
	require.NoError(t, err)

	lengths[0] = 99
	require.Equal(t, []int{2, 2}, plan.AxisSizes)
}
